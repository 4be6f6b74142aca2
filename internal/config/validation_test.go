package config

import (
	"testing"

	"github.com/hengadev/errsx"
	"github.com/stretchr/testify/assert"
)

func validSettings() Settings {
	return Settings{
		SecretKey:      "o!rDE(Qbrq7u4OV",
		Algorithm:      "AES-256-CBC",
		InputEncoding:  "utf8",
		OutputEncoding: "base64",
		SaltRounds:     5,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(s *Settings)
		wantErr  bool
		errCount int
		errKeys  []string
	}{
		{
			name:   "valid settings",
			mutate: func(s *Settings) {},
		},
		{
			name:     "empty secret key",
			mutate:   func(s *Settings) { s.SecretKey = "  " },
			wantErr:  true,
			errCount: 1,
			errKeys:  []string{"secretKey"},
		},
		{
			name:     "unknown algorithm",
			mutate:   func(s *Settings) { s.Algorithm = "aes-999-cbc" },
			wantErr:  true,
			errCount: 1,
			errKeys:  []string{"algorithm"},
		},
		{
			name: "bad encodings",
			mutate: func(s *Settings) {
				s.InputEncoding = "ebcdic"
				s.OutputEncoding = ""
			},
			wantErr:  true,
			errCount: 2,
			errKeys:  []string{"inputEncoding", "outputEncoding"},
		},
		{
			name:     "salt rounds out of range",
			mutate:   func(s *Settings) { s.SaltRounds = 40 },
			wantErr:  true,
			errCount: 1,
			errKeys:  []string{"saltRounds"},
		},
		{
			name:     "everything wrong",
			mutate:   func(s *Settings) { *s = Settings{} },
			wantErr:  true,
			errCount: 5,
			errKeys:  []string{"secretKey", "algorithm", "inputEncoding", "outputEncoding", "saltRounds"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(&s)

			err := Validate(s)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			assert.Error(t, err)
			errs, ok := err.(errsx.Map)
			if !ok {
				t.Fatal("expected error to be of type errsx.Map")
			}
			assert.Equal(t, tt.errCount, len(errs))
			for _, key := range tt.errKeys {
				if _, ok := errs[key]; !ok {
					t.Errorf("expected key '%s' in errsx.Map", key)
				}
			}
		})
	}
}
