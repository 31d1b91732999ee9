// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package cloud

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"os"
	"path/filepath"
)

const DefaultAWSProfile = "biomegen"

// getAWSSession uses the named profile of ~/.aws/credentials if that file exists,
// and the default credential chain (environment, instance role) otherwise.
func getAWSSession(region, profile string) (*session.Session, error) {
	config := aws.NewConfig().WithRegion(region)

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".aws", "credentials")
		if _, statErr := os.Stat(path); statErr == nil {
			config = config.WithCredentials(credentials.NewSharedCredentials(path, profile))
		}
	}

	return session.NewSession(config)
}
