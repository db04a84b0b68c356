// Copyright (c) 2025 Todd DeLuca <todddeluca@yahoo.com>.
// SPDX-License-Identifier: MIT

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setupTestConfig sets TFD_CFG to point to a test config file.
// Returns cleanup function that should be deferred.
func setupTestConfig(t *testing.T, testdataFile string) (cleanup func()) {
	t.Helper()

	configPath := filepath.Join("testdata", testdataFile)
	absPath, err := filepath.Abs(configPath)
	assert.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("TFD_CFG", absPath)

	// Reset the global Config to force reload
	Config = Type{}

	return func() {
		Config = Type{}
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			wantErr:  false,
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Contains(t, cfg.Data, "source")
				assert.Equal(t, "ftp://ftp.geneontology.org/pub/go/godatabase/archive", cfg.Data["source"])
				assert.Equal(t, "./data", cfg.Data["root"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			wantErr:  false,
			checkFunc: func(t *testing.T, cfg Type) {
				source, ok := cfg.Data["source"].(map[string]interface{})
				assert.True(t, ok, "source should be a map")
				s3, ok := source["s3"].(map[string]interface{})
				assert.True(t, ok, "s3 should be a map")
				assert.Equal(t, "us-west-2", s3["region"])
				assert.Equal(t, "go-termdb-mirror", s3["bucket"])
			},
		},
		{
			name:     "mixed types",
			testFile: "mixed-types.yaml",
			wantErr:  false,
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, "go-termdb", cfg.Data["name"])
				assert.Equal(t, 1, cfg.Data["version"])
				assert.Equal(t, true, cfg.Data["enabled"])
				assert.Equal(t, 30.5, cfg.Data["timeout"])
				releases, ok := cfg.Data["releases"].([]interface{})
				assert.True(t, ok)
				assert.Len(t, releases, 2)
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			wantErr:  false,
			checkFunc: func(t *testing.T, cfg Type) {
				// Empty YAML unmarshals to nil map, which is acceptable
				assert.NotEmpty(t, cfg.Source, "should have a source path")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			cfg, err := Load()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("TFD_CFG", "/nonexistent/path/tfd.yaml")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_TFD_CFG_IsDirectory(t *testing.T) {
	t.Setenv("TFD_CFG", "testdata")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{
			name:     "simple string value",
			testFile: "simple.yaml",
			key:      "root",
			want:     "./data",
			wantErr:  false,
		},
		{
			name:     "nested string value",
			testFile: "nested.yaml",
			key:      "source.s3.region",
			want:     "us-west-2",
			wantErr:  false,
		},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "missing",
			defaultValue: []string{"default-value"},
			want:         "default-value",
			wantErr:      false,
		},
		{
			name:     "missing key without default",
			testFile: "simple.yaml",
			key:      "missing",
			want:     "",
			wantErr:  true,
		},
		{
			name:     "non-string value",
			testFile: "mixed-types.yaml",
			key:      "version",
			want:     "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			_, _ = Load()

			got, err := GetString(tt.key, tt.defaultValue...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []int
		want         int
		wantErr      bool
	}{
		{
			name:     "int value",
			testFile: "mixed-types.yaml",
			key:      "version",
			want:     1,
			wantErr:  false,
		},
		{
			name:     "float value converted to int",
			testFile: "mixed-types.yaml",
			key:      "timeout",
			want:     30,
			wantErr:  false,
		},
		{
			name:     "nested int value",
			testFile: "nested.yaml",
			key:      "source.s3.max_retries",
			want:     5,
			wantErr:  false,
		},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "missing",
			defaultValue: []int{60},
			want:         60,
			wantErr:      false,
		},
		{
			name:     "missing key without default",
			testFile: "simple.yaml",
			key:      "missing",
			want:     0,
			wantErr:  true,
		},
		{
			name:     "non-int value",
			testFile: "simple.yaml",
			key:      "root",
			want:     0,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			_, _ = Load()

			got, err := GetInt(tt.key, tt.defaultValue...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetStringSlice(t *testing.T) {
	cleanup := setupTestConfig(t, "mixed-types.yaml")
	defer cleanup()

	_, err := Load()
	assert.NoError(t, err)

	releases, err := GetStringSlice("releases")
	assert.NoError(t, err)
	assert.Equal(t, []string{"2012-05-01", "2012-06-01"}, releases)

	_, err = GetStringSlice("name")
	assert.Error(t, err)

	fallback, err := GetStringSlice("missing", []string{"x"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"x"}, fallback)
}

func TestConfig_GetWithNamespace(t *testing.T) {
	cleanup := setupTestConfig(t, "nested.yaml")
	defer cleanup()

	_, err := Load()
	assert.NoError(t, err)

	Config.Namespace = "source.s3"

	val, err := Config.get("region")
	assert.NoError(t, err)
	assert.Equal(t, "us-west-2", val)

	val, err = Config.get("bucket")
	assert.NoError(t, err)
	assert.Equal(t, "go-termdb-mirror", val)

	Config.Namespace = "source.ftp"
	val, err = Config.get("region")
	assert.NoError(t, err)
	assert.Equal(t, "us-east-1", val)

	val, err = Config.get("bucket")
	assert.NoError(t, err)
	assert.Equal(t, "local-bucket", val)
}

func TestConfig_GetNestedPath(t *testing.T) {
	cleanup := setupTestConfig(t, "deep-nested.yaml")
	defer cleanup()

	_, err := Load()
	assert.NoError(t, err)

	val, err := Config.get("level1.level2.level3.value")
	assert.NoError(t, err)
	assert.Equal(t, "deep-value", val)
}

func TestConfig_LazyLoad(t *testing.T) {
	cleanup := setupTestConfig(t, "simple.yaml")
	defer cleanup()

	// Don't explicitly call Load(), just use GetString
	// This should trigger lazy loading
	val, err := GetString("root")
	assert.NoError(t, err)
	assert.Equal(t, "./data", val)
	assert.NotEmpty(t, Config.Source, "Config should be loaded")
}

func TestGetString_NamespaceFallback(t *testing.T) {
	cleanup := setupTestConfig(t, "namespace.yaml")
	defer cleanup()

	_, err := Load()
	assert.NoError(t, err)

	Config.Namespace = "source.s3"

	val, err := GetString("setting")
	assert.NoError(t, err)
	assert.Equal(t, "s3-value", val)

	val, err = GetString("specific")
	assert.NoError(t, err)
	assert.Equal(t, "s3-specific", val)

	_, err = GetString("nonexistent")
	assert.Error(t, err)
}
