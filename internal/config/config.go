package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/julianstephens/daycard/internal/constants"
	"github.com/julianstephens/daycard/internal/keyring"
	"github.com/julianstephens/daycard/internal/logger"
	"github.com/julianstephens/daycard/internal/storage"
	"github.com/julianstephens/daycard/internal/storage/postgres"
	"github.com/julianstephens/daycard/internal/storage/sqlite"
)

// Kind names the backend a storage target selects.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindJSON     Kind = "json"
)

// Source records where the storage target came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceDefault Source = "default"
)

type Target struct {
	Value  string
	Kind   Kind
	Source Source
}

// Dir is where logs, backups and the session lock live for this target.
func (t Target) Dir() string {
	if t.Kind == KindPostgres {
		return ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	}
	return filepath.Dir(t.Value)
}

// LoadEnv reads KEY=value pairs from path into the process environment
// without overriding variables that are already set. An empty path loads
// ./.env when it exists.
func LoadEnv(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(ExpandPath(path)); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	logger.Debug("Loaded environment file", "path", path)
	return nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ResolveActor picks the name stamped on every write: the flag, then
// DAYCARD_ACTOR, then the OS user.
func ResolveActor(flag string) string {
	if a := strings.TrimSpace(flag); a != "" {
		return a
	}
	if a := strings.TrimSpace(os.Getenv(constants.EnvActor)); a != "" {
		return a
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "admin"
}

// ResolveTarget picks the storage target: the flag, then DAYCARD_CONFIG,
// then DAYCARD_DB_CONNECTION, then the keyring, then the default sqlite path.
// Connection strings given on the command line must not carry a password.
func ResolveTarget(flag string) (Target, error) {
	if v := strings.TrimSpace(flag); v != "" {
		t := classify(v, SourceFlag)
		if t.Kind == KindPostgres {
			if _, err := postgres.ValidateConnString(t.Value); err != nil {
				if errors.Is(err, postgres.ErrEmbeddedCredentials) {
					return Target{}, fmt.Errorf("%w: store it with 'daycard keyring set' or %s instead", err, constants.EnvDBConnection)
				}
				return Target{}, err
			}
		}
		return t, nil
	}
	if v := strings.TrimSpace(os.Getenv(constants.EnvConfig)); v != "" {
		return classify(v, SourceEnv), nil
	}
	if v := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); v != "" {
		return classify(v, SourceEnv), nil
	}
	if v, err := keyring.Default.Get(); err == nil {
		return classify(v, SourceKeyring), nil
	} else if !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup skipped", "error", err)
	}
	return classify(constants.DefaultConfigPath, SourceDefault), nil
}

func classify(v string, src Source) Target {
	switch {
	case postgres.IsConnString(v) || strings.Contains(v, "host="):
		return Target{Value: v, Kind: KindPostgres, Source: src}
	case strings.EqualFold(filepath.Ext(v), ".json"):
		return Target{Value: ExpandPath(v), Kind: KindJSON, Source: src}
	default:
		return Target{Value: ExpandPath(v), Kind: KindSQLite, Source: src}
	}
}

// OpenStore builds the provider for t. It does not connect.
func OpenStore(t Target) storage.Provider {
	switch t.Kind {
	case KindPostgres:
		return postgres.New(t.Value)
	case KindJSON:
		return storage.NewJSONStore(t.Value)
	default:
		return sqlite.NewStore(t.Value)
	}
}
