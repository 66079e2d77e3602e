/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"dirpx.dev/dxltype/dxcore/errors"
	"dirpx.dev/dxltype/dxcore/model"
	"dirpx.dev/dxltype/dxcore/model/linetype"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	d := Default()
	if d.Capability != linetype.Complex || d.DowngradeBrokenLayers || d.AllowOverwrite {
		t.Errorf("Default() = %v", d)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    Config
		wantErr bool
	}{
		{
			name:    "yaml full",
			file:    "dxltype.yaml",
			content: "capability: simple\ndowngrade_broken_layers: true\nallow_overwrite: true\n",
			want:    Config{Capability: linetype.Simple, DowngradeBrokenLayers: true, AllowOverwrite: true},
		},
		{
			name:    "yaml partial keeps defaults",
			file:    "dxltype.yml",
			content: "downgrade_broken_layers: true\n",
			want:    Config{Capability: linetype.Complex, DowngradeBrokenLayers: true},
		},
		{
			name:    "empty yaml is default",
			file:    "empty.yaml",
			content: "",
			want:    Default(),
		},
		{
			name:    "json",
			file:    "dxltype.JSON",
			content: `{"capability":"simple"}`,
			want:    Config{Capability: linetype.Simple},
		},
		{
			name:    "json numeric tier",
			file:    "dxltype.json",
			content: `{"capability":1,"allow_overwrite":true}`,
			want:    Config{Capability: linetype.Complex, AllowOverwrite: true},
		},
		{
			name:    "bad tier",
			file:    "bad.yaml",
			content: "capability: extreme\n",
			wantErr: true,
		},
		{
			name:    "bad json",
			file:    "bad.json",
			content: `{"capability":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeFile(t, tt.file, tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_NullDocument(t *testing.T) {
	tests := []struct {
		file    string
		content string
	}{
		{"tilde.yaml", "~\n"},
		{"null.yaml", "null\n"},
		{"null.json", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			var ve *errors.ValidationError
			if !stderrors.As(err, &ve) {
				t.Fatalf("Load() error = %v, want *errors.ValidationError", err)
			}
			if ve.Type != "Config" {
				t.Errorf("ValidationError.Type = %q, want Config", ve.Type)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load(missing) should fail")
	}
}

func TestConfig_RoundTrip(t *testing.T) {
	in := &Config{Capability: linetype.Simple, DowngradeBrokenLayers: true}

	data, err := model.ToYAML(in)
	if err != nil {
		t.Fatalf("ToYAML() error = %v", err)
	}
	out := &Config{}
	if err := model.FromYAML(data, &out); err != nil {
		t.Fatalf("FromYAML() error = %v", err)
	}
	if *out != *in {
		t.Errorf("YAML round-trip = %v, want %v", out, in)
	}

	if _, err := model.ToJSON(&Config{Capability: linetype.Tier(9)}); err == nil {
		t.Error("ToJSON(invalid) should fail")
	}
}
