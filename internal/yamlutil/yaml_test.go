package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/mdserve/go-mdserve/internal/yamlutil"
)

type serverSettings struct {
	Addr    string `yaml:"addr"`
	Workers int    `yaml:"workers"`
	Theme   string `yaml:"theme"`
}

func TestDecodeStrict(t *testing.T) {
	t.Parallel()

	data := []byte("addr: :8080\nworkers: 4\ntheme: dark\n")

	var got serverSettings
	if err := yamlutil.DecodeStrict(data, &got); err != nil {
		t.Fatalf("DecodeStrict() error = %v", err)
	}
	if got.Addr != ":8080" || got.Workers != 4 || got.Theme != "dark" {
		t.Errorf("DecodeStrict() = %+v", got)
	}
}

func TestDecodeStrict_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	data := []byte("addr: :8080\nbogus: true\n")

	var got serverSettings
	if err := yamlutil.DecodeStrict(data, &got); err == nil {
		t.Error("DecodeStrict() accepted unknown field")
	}
}

func TestDecodeStrict_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"nil data", nil, yamlutil.ErrEmptyInput},
		{"empty data", []byte{}, yamlutil.ErrEmptyInput},
		{"oversized data", []byte("addr: " + strings.Repeat("a", yamlutil.MaxInputSize)), yamlutil.ErrInputTooLarge},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got serverSettings
			if err := yamlutil.DecodeStrict(tt.data, &got); !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeStrict() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
