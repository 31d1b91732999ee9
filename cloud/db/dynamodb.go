// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"errors"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/guregu/dynamo"
)

var ErrNotFound = errors.New("db: generation not found")

type DynamoDBDatabase struct {
	svc              *dynamodb.DynamoDB
	db               *dynamo.DB
	generationsTable dynamo.Table
}

func NewDynamoDBDatabase(session *session.Session, stage string) (*DynamoDBDatabase, error) {
	ddb := &DynamoDBDatabase{svc: dynamodb.New(session)}
	ddb.db = dynamo.NewFromIface(ddb.svc)
	ddb.generationsTable = ddb.db.Table(GenerationsTable(stage))
	return ddb, nil
}

func GenerationsTable(stage string) string {
	return "biomegen-" + stage + "-generations"
}

// PutGeneration writes a ledger row unless one with the same id exists.
func (ddb *DynamoDBDatabase) PutGeneration(generation Generation) error {
	err := ddb.generationsTable.Put(generation).If("attribute_not_exists(id)").Run()
	if err != nil {
		var conditionFailed *dynamodb.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return nil
		}
	}
	return err
}

func (ddb *DynamoDBDatabase) ReadGeneration(id string) (*Generation, error) {
	var generation Generation
	err := ddb.generationsTable.Get("id", id).One(&generation)
	if errors.Is(err, dynamo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &generation, nil
}

func (ddb *DynamoDBDatabase) ReadGenerations() (generations []Generation, err error) {
	query := ddb.generationsTable.Scan().Iter()

	for {
		var generation Generation
		if !query.Next(&generation) {
			return generations, query.Err()
		}
		generations = append(generations, generation)
	}
}

func (ddb *DynamoDBDatabase) ReadGenerationsBySeed(seed int64) (generations []Generation, err error) {
	query := ddb.generationsTable.Scan().Filter("'seed' = ?", seed).Iter()

	for {
		var generation Generation
		if !query.Next(&generation) {
			return generations, query.Err()
		}
		generations = append(generations, generation)
	}
}
