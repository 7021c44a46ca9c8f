package encryption

import (
	"testing"

	"nutrilog/internal/config"
)

func TestNewEncryptorFromConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		typ     string
		pub     string
		priv    string
		wantNil bool
		wantErr bool
	}{
		{name: "empty means none", typ: "", wantNil: true},
		{name: "none", typ: "none", wantNil: true},
		{name: "test", typ: "test"},
		{name: "age", typ: "age", pub: "/k/a.pub", priv: "/k/a.key"},
		{name: "age without keys", typ: "age", wantErr: true},
		{name: "unknown", typ: "rot13", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.EncryptionConfig{Type: tt.typ, PublicKeyPath: tt.pub, PrivateKeyPath: tt.priv}
			enc, err := NewEncryptorFromConfig(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewEncryptorFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if (enc == nil) != tt.wantNil {
				t.Errorf("NewEncryptorFromConfig() = %v, wantNil %v", enc, tt.wantNil)
			}
		})
	}
}
