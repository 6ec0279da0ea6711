// Package dynamodb implements the annotation datasource on a single
// DynamoDB table. Herbs and diseases are point reads (PK = HERB#name or
// DISEASE#name, SK = META); pathways share one partition (PK = PATHWAY,
// SK = pathway id) so the catalog is a single query.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"herbnet/domain/core/entities"
	pkgerrors "herbnet/pkg/errors"
)

const (
	herbKeyPrefix    = "HERB#"
	diseaseKeyPrefix = "DISEASE#"
	pathwayPartition = "PATHWAY"
	metaSortKey      = "META"
)

type compoundRecord struct {
	Name    string   `dynamodbav:"name"`
	OB      float64  `dynamodbav:"ob"`
	DL      float64  `dynamodbav:"dl"`
	Targets []string `dynamodbav:"targets"`
}

type herbRecord struct {
	Name      string           `dynamodbav:"name"`
	Compounds []compoundRecord `dynamodbav:"compounds"`
}

type diseaseRecord struct {
	Name    string   `dynamodbav:"name"`
	Source  string   `dynamodbav:"source"`
	Targets []string `dynamodbav:"targets"`
}

type pathwayRecord struct {
	ID    string   `dynamodbav:"SK"`
	Name  string   `dynamodbav:"name"`
	Genes []string `dynamodbav:"genes"`
}

// DataSource reads annotations from DynamoDB. Every call carries a
// deadline; deadline failures surface as datasource timeouts, and a
// circuit breaker sheds load when the table is persistently failing.
type DataSource struct {
	client    *awsdynamodb.Client
	tableName string
	timeout   time.Duration
	breaker   *gobreaker.CircuitBreaker
	logger    *zap.Logger
}

// NewDataSource creates a DynamoDB-backed datasource
func NewDataSource(client *awsdynamodb.Client, tableName string, timeout time.Duration, logger *zap.Logger) *DataSource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "dynamodb-datasource",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("datasource circuit state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		IsSuccessful: func(err error) bool {
			// Not-found is an answered lookup, not a backend failure
			return err == nil || pkgerrors.IsNotFound(err)
		},
	})
	return &DataSource{
		client:    client,
		tableName: tableName,
		timeout:   timeout,
		breaker:   breaker,
		logger:    logger,
	}
}

// LookupHerb resolves a herb and its compound annotations by name
func (d *DataSource) LookupHerb(ctx context.Context, name string) (*entities.Herb, error) {
	item, err := d.getItem(ctx, herbKeyPrefix+name, fmt.Sprintf("herb %q", name))
	if err != nil {
		return nil, err
	}

	var record herbRecord
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, pkgerrors.NewInternalError("unmarshal herb item", err)
	}

	compounds := make([]entities.Compound, 0, len(record.Compounds))
	for _, c := range record.Compounds {
		compound, err := entities.NewCompound(c.Name, c.OB, c.DL, toTargets(c.Targets))
		if err != nil {
			return nil, pkgerrors.NewInternalError(fmt.Sprintf("invalid compound annotation %q", c.Name), err)
		}
		compounds = append(compounds, compound)
	}
	herb, err := entities.NewHerb(record.Name, compounds)
	if err != nil {
		return nil, pkgerrors.NewInternalError(fmt.Sprintf("invalid herb annotation %q", name), err)
	}
	return herb, nil
}

// LookupDisease resolves a disease and its known target genes by name
func (d *DataSource) LookupDisease(ctx context.Context, name string) (*entities.Disease, error) {
	item, err := d.getItem(ctx, diseaseKeyPrefix+name, fmt.Sprintf("disease %q", name))
	if err != nil {
		return nil, err
	}

	var record diseaseRecord
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, pkgerrors.NewInternalError("unmarshal disease item", err)
	}

	disease, err := entities.NewDisease(record.Name, toTargets(record.Targets), record.Source)
	if err != nil {
		return nil, pkgerrors.NewInternalError(fmt.Sprintf("invalid disease annotation %q", name), err)
	}
	return disease, nil
}

// PathwayCatalog queries the pathway partition for the full catalog
func (d *DataSource) PathwayCatalog(ctx context.Context) ([]entities.Pathway, error) {
	keyCondition := expression.Key("PK").Equal(expression.Value(pathwayPartition))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCondition).Build()
	if err != nil {
		return nil, pkgerrors.NewInternalError("build pathway query", err)
	}

	result, err := d.execute(ctx, func(callCtx context.Context) (any, error) {
		var items []map[string]types.AttributeValue
		var startKey map[string]types.AttributeValue
		for {
			out, err := d.client.Query(callCtx, &awsdynamodb.QueryInput{
				TableName:                 aws.String(d.tableName),
				KeyConditionExpression:    expr.KeyCondition(),
				ExpressionAttributeNames:  expr.Names(),
				ExpressionAttributeValues: expr.Values(),
				ExclusiveStartKey:         startKey,
			})
			if err != nil {
				return nil, err
			}
			items = append(items, out.Items...)
			if out.LastEvaluatedKey == nil {
				return items, nil
			}
			startKey = out.LastEvaluatedKey
		}
	}, "pathway catalog")
	if err != nil {
		return nil, err
	}

	items := result.([]map[string]types.AttributeValue)
	catalog := make([]entities.Pathway, 0, len(items))
	for _, item := range items {
		var record pathwayRecord
		if err := attributevalue.UnmarshalMap(item, &record); err != nil {
			return nil, pkgerrors.NewInternalError("unmarshal pathway item", err)
		}
		pathway, err := entities.NewPathway(record.ID, record.Name, toTargets(record.Genes))
		if err != nil {
			return nil, pkgerrors.NewInternalError(fmt.Sprintf("invalid pathway annotation %q", record.ID), err)
		}
		catalog = append(catalog, pathway)
	}
	return catalog, nil
}

// getItem is a breaker-guarded point read with the not-found mapping
func (d *DataSource) getItem(ctx context.Context, partitionKey, what string) (map[string]types.AttributeValue, error) {
	result, err := d.execute(ctx, func(callCtx context.Context) (any, error) {
		out, err := d.client.GetItem(callCtx, &awsdynamodb.GetItemInput{
			TableName: aws.String(d.tableName),
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: partitionKey},
				"SK": &types.AttributeValueMemberS{Value: metaSortKey},
			},
		})
		if err != nil {
			return nil, err
		}
		if out.Item == nil {
			return nil, pkgerrors.NewNotFoundError(what + " not found")
		}
		return out.Item, nil
	}, what)
	if err != nil {
		return nil, err
	}
	return result.(map[string]types.AttributeValue), nil
}

// execute runs one backend call under the deadline and the circuit breaker
func (d *DataSource) execute(ctx context.Context, call func(context.Context) (any, error), what string) (any, error) {
	result, err := d.breaker.Execute(func() (any, error) {
		callCtx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()
		return call(callCtx)
	})
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			return nil, pkgerrors.NewDataSourceTimeoutError("datasource unavailable, circuit open", err)
		case errors.Is(err, context.DeadlineExceeded):
			return nil, pkgerrors.NewDataSourceTimeoutError(fmt.Sprintf("lookup of %s timed out", what), err)
		case pkgerrors.IsNotFound(err):
			return nil, err
		default:
			return nil, pkgerrors.NewInternalError(fmt.Sprintf("lookup of %s failed", what), err)
		}
	}
	return result, nil
}

func toTargets(symbols []string) []entities.Target {
	targets := make([]entities.Target, len(symbols))
	for i, s := range symbols {
		targets[i] = entities.Target(s)
	}
	return targets
}
