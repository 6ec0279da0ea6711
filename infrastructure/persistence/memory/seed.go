package memory

import (
	"herbnet/domain/core/entities"
)

type compoundSeed struct {
	name    string
	ob      float64
	dl      float64
	targets []entities.Target
}

var herbSeeds = map[string][]compoundSeed{
	"Astragalus": {
		{name: "Astragaloside IV", ob: 22.5, dl: 0.15, targets: []entities.Target{"AKT1", "VEGFA"}},
		{name: "Calycosin", ob: 47.75, dl: 0.24, targets: []entities.Target{"TNF", "IL6", "ESR1", "NOS2"}},
		{name: "Formononetin", ob: 69.67, dl: 0.21, targets: []entities.Target{"ESR1", "PTGS2", "CASP3"}},
		{name: "Quercetin", ob: 46.43, dl: 0.28, targets: []entities.Target{"TNF", "IL6", "PTGS2", "EGFR", "VEGFA", "CASP3"}},
	},
	"Angelica": {
		{name: "Ferulic acid", ob: 39.56, dl: 0.06, targets: []entities.Target{"PTGS2", "NOS2"}},
		{name: "Z-Ligustilide", ob: 53.72, dl: 0.07, targets: []entities.Target{"TNF", "NOS3"}},
		{name: "Beta-sitosterol", ob: 36.91, dl: 0.75, targets: []entities.Target{"CASP3", "BCL2", "PTGS2"}},
	},
	"Ginseng": {
		{name: "Ginsenoside Rb1", ob: 6.24, dl: 0.04, targets: []entities.Target{"AKT1", "BCL2"}},
		{name: "Ginsenoside Rg1", ob: 38.0, dl: 0.28, targets: []entities.Target{"NOS3", "AKT1", "VEGFA"}},
		{name: "Ginsenoside Re", ob: 44.72, dl: 0.2, targets: []entities.Target{"INSR", "SLC2A4"}},
		{name: "Kaempferol", ob: 41.88, dl: 0.24, targets: []entities.Target{"TNF", "PTGS2", "BCL2", "TP53"}},
	},
	"Salvia": {
		{name: "Tanshinone IIA", ob: 49.89, dl: 0.4, targets: []entities.Target{"TNF", "IL6", "VEGFA", "MMP9"}},
		{name: "Salvianolic acid B", ob: 9.05, dl: 0.75, targets: []entities.Target{"NOS3", "MMP9"}},
		{name: "Danshensu", ob: 36.91, dl: 0.06, targets: []entities.Target{"NOS3", "PTGS2"}},
		{name: "Cryptotanshinone", ob: 52.34, dl: 0.4, targets: []entities.Target{"STAT3", "TNF", "CASP3"}},
	},
	"Licorice": {
		{name: "Glycyrrhizin", ob: 19.62, dl: 0.11, targets: []entities.Target{"TNF", "IL6"}},
		{name: "Liquiritin", ob: 65.69, dl: 0.74, targets: []entities.Target{"CASP3", "BCL2"}},
		{name: "Liquiritigenin", ob: 32.76, dl: 0.18, targets: []entities.Target{"ESR1", "NOS2", "TNF"}},
		{name: "Isoliquiritigenin", ob: 85.32, dl: 0.15, targets: []entities.Target{"PTGS2", "IL6"}},
	},
}

type diseaseSeed struct {
	source  string
	targets []entities.Target
}

var diseaseSeeds = map[string]diseaseSeed{
	"Type 2 diabetes": {
		source:  "DisGeNET",
		targets: []entities.Target{"INSR", "SLC2A4", "AKT1", "PPARG", "TNF", "IL6"},
	},
	"Coronary heart disease": {
		source:  "OMIM",
		targets: []entities.Target{"NOS3", "VEGFA", "MMP9", "APOB", "PTGS2"},
	},
	"Hepatocellular carcinoma": {
		source:  "DisGeNET",
		targets: []entities.Target{"TP53", "EGFR", "STAT3", "CASP3", "BCL2", "VEGFA"},
	},
	"Inflammation": {
		source:  "GeneCards",
		targets: []entities.Target{"TNF", "IL6", "PTGS2", "NOS2", "STAT3"},
	},
	"Cardiovascular disease": {
		source:  "GeneCards",
		targets: []entities.Target{"NOS3", "VEGFA", "TNF", "MMP9", "AKT1"},
	},
}

type pathwaySeed struct {
	id    string
	name  string
	genes []entities.Target
}

var pathwaySeeds = []pathwaySeed{
	{id: "hsa04151", name: "PI3K-Akt signaling pathway", genes: []entities.Target{"AKT1", "EGFR", "VEGFA", "TP53", "INSR", "BCL2", "NOS3"}},
	{id: "hsa04668", name: "TNF signaling pathway", genes: []entities.Target{"TNF", "IL6", "PTGS2", "CASP3", "MMP9", "AKT1"}},
	{id: "hsa05200", name: "Pathways in cancer", genes: []entities.Target{"TP53", "EGFR", "STAT3", "CASP3", "BCL2", "VEGFA", "MMP9", "AKT1"}},
	{id: "hsa00590", name: "Arachidonic acid metabolism", genes: []entities.Target{"PTGS2", "ALOX5"}},
	{id: "hsa04020", name: "Calcium signaling pathway", genes: []entities.Target{"NOS3", "NOS2", "EGFR", "ADRB2"}},
	{id: "hsa04910", name: "Insulin signaling pathway", genes: []entities.Target{"INSR", "SLC2A4", "AKT1", "PPARG"}},
	{id: "hsa03320", name: "PPAR signaling pathway", genes: []entities.Target{"PPARG", "SLC2A4", "APOB"}},
	{id: "hsa04210", name: "Apoptosis", genes: []entities.Target{"CASP3", "BCL2", "TP53", "TNF", "AKT1"}},
	{id: "hsa04064", name: "NF-kappa B signaling pathway", genes: []entities.Target{"TNF", "PTGS2", "BCL2", "STAT3"}},
}

// NewSeededDataSource creates an in-memory store preloaded with the bundled
// herb, disease, and pathway annotations. Seed data is validated at startup;
// a malformed seed is a programming error and panics.
func NewSeededDataSource() *DataSource {
	ds := NewDataSource()

	for name, seeds := range herbSeeds {
		compounds := make([]entities.Compound, 0, len(seeds))
		for _, seed := range seeds {
			compound, err := entities.NewCompound(seed.name, seed.ob, seed.dl, seed.targets)
			if err != nil {
				panic("invalid compound seed: " + err.Error())
			}
			compounds = append(compounds, compound)
		}
		herb, err := entities.NewHerb(name, compounds)
		if err != nil {
			panic("invalid herb seed: " + err.Error())
		}
		ds.AddHerb(herb)
	}

	for name, seed := range diseaseSeeds {
		disease, err := entities.NewDisease(name, seed.targets, seed.source)
		if err != nil {
			panic("invalid disease seed: " + err.Error())
		}
		ds.AddDisease(disease)
	}

	catalog := make([]entities.Pathway, 0, len(pathwaySeeds))
	for _, seed := range pathwaySeeds {
		pathway, err := entities.NewPathway(seed.id, seed.name, seed.genes)
		if err != nil {
			panic("invalid pathway seed: " + err.Error())
		}
		catalog = append(catalog, pathway)
	}
	ds.SetCatalog(catalog)

	return ds
}
