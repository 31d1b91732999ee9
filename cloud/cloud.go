// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cloud publishes generated levels to S3 and records them in DynamoDB.
package cloud

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/biomegen/cloud/db"
	"github.com/SoftbearStudios/biomegen/cloud/fs"
	"github.com/SoftbearStudios/biomegen/export"
	"github.com/SoftbearStudios/biomegen/river"
	"strings"
	"time"
)

type Config struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Region  string `yaml:"region" toml:"region"`
	Stage   string `yaml:"stage" toml:"stage"`
	Profile string `yaml:"profile" toml:"profile"`
	// CacheSeconds is the max-age of uploaded files.
	CacheSeconds int `yaml:"cache_seconds" toml:"cache_seconds"`
	// RetentionDays expires ledger rows. Zero keeps them forever.
	RetentionDays int `yaml:"retention_days" toml:"retention_days"`
}

func (config *Config) Validate() error {
	if !config.Enabled {
		return nil
	}
	if config.Region == "" {
		return errors.New("missing region")
	}
	if config.Stage == "" {
		return errors.New("missing stage")
	}
	return nil
}

// A nil cloud is valid to use with any methods (acts as a no-op)
// This just means generation is in offline mode
type Cloud struct {
	config   Config
	database db.Database
	fs       fs.Filesystem
}

func (cloud *Cloud) String() string {
	var builder strings.Builder
	builder.WriteByte('[')
	if cloud == nil {
		builder.WriteString("offline")
	} else {
		builder.WriteString(cloud.config.Region)
		builder.WriteByte(' ')
		builder.WriteString(cloud.config.Stage)
	}
	builder.WriteByte(']')
	return builder.String()
}

// New connects to AWS. Returns a nil cloud (offline) if config is not enabled.
func New(config Config) (*Cloud, error) {
	if !config.Enabled {
		return nil, nil
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("cloud: %w", err)
	}
	if config.Profile == "" {
		config.Profile = DefaultAWSProfile
	}

	session, err := getAWSSession(config.Region, config.Profile)
	if err != nil {
		return nil, err
	}

	database, err := db.NewDynamoDBDatabase(session, config.Stage)
	if err != nil {
		return nil, err
	}
	filesystem, err := fs.NewS3Filesystem(session, config.Stage)
	if err != nil {
		return nil, err
	}

	return NewWith(config, database, filesystem), nil
}

// NewWith uses existing backends.
func NewWith(config Config, database db.Database, filesystem fs.Filesystem) *Cloud {
	return &Cloud{
		config:   config,
		database: database,
		fs:       filesystem,
	}
}

// Publish uploads the snapshot and its image under the generation id, then records
// the generation in the ledger. image may be empty.
func (cloud *Cloud) Publish(snapshot *export.Snapshot, image []byte, format string) error {
	if cloud == nil {
		return nil
	}

	buf, err := snapshot.Marshal()
	if err != nil {
		return err
	}

	prefix := snapshot.ID.String() + "/"
	snapshotKey := prefix + "level.json"
	if err := cloud.fs.UploadStaticFile(snapshotKey, cloud.config.CacheSeconds, buf); err != nil {
		return fmt.Errorf("upload %s: %w", snapshotKey, err)
	}

	if len(image) > 0 {
		imageKey := prefix + "level." + format
		if err := cloud.fs.UploadStaticFile(imageKey, cloud.config.CacheSeconds, image); err != nil {
			return fmt.Errorf("upload %s: %w", imageKey, err)
		}
	}

	return cloud.database.PutGeneration(cloud.generation(snapshot, snapshotKey, time.Now()))
}

func (cloud *Cloud) generation(snapshot *export.Snapshot, snapshotKey string, now time.Time) db.Generation {
	generation := db.Generation{
		ID:       snapshot.ID.String(),
		Seed:     snapshot.Seed,
		Created:  now.Unix(),
		Rows:     snapshot.TileRows * snapshot.TileHeight,
		Cols:     snapshot.TileCols * snapshot.TileWidth,
		Rivers:   len(snapshot.Rivers),
		Trees:    len(snapshot.Vegetation),
		Snapshot: snapshotKey,
	}
	for _, r := range snapshot.Rivers {
		if r.Status == river.Stranded {
			generation.Stranded++
		}
	}
	if days := cloud.config.RetentionDays; days > 0 {
		generation.TTL = now.Add(time.Duration(days) * 24 * time.Hour).Unix()
	}
	return generation
}

// History lists previous generations with a seed, or all of them if seed is nil.
func (cloud *Cloud) History(seed *int64) ([]db.Generation, error) {
	if cloud == nil {
		return nil, nil
	}
	if seed != nil {
		return cloud.database.ReadGenerationsBySeed(*seed)
	}
	return cloud.database.ReadGenerations()
}
