// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

// Generation is one row of the generation ledger.
type Generation struct {
	ID       string `dynamo:"id"`
	Seed     int64  `dynamo:"seed"`
	Created  int64  `dynamo:"created"` // unix seconds
	Rows     int    `dynamo:"rows"`
	Cols     int    `dynamo:"cols"`
	Rivers   int    `dynamo:"rivers"`
	Stranded int    `dynamo:"stranded"`
	Trees    int    `dynamo:"trees"`
	Snapshot string `dynamo:"snapshot"` // key of the uploaded snapshot
	TTL      int64  `dynamo:"ttl,omitempty"`
}
