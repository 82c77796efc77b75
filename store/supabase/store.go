// Package supabase implements the store repositories against the
// hosted tabular REST store. Every operation is a stateless HTTP call;
// there is no connection to close and no transaction support, so
// multi-step writes are sequential best-effort calls.
//
// The REST client does not thread context through requests; deadlines
// are bounded by its HTTP client's timeout instead.
package supabase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	postgrest "github.com/supabase-community/postgrest-go"

	"leadhub/config"
	"leadhub/store"
)

type backend struct {
	client    *postgrest.Client
	log       *logrus.Entry
	backupDir string
}

// New builds the REST client from the configured project URL and API
// key and returns the assembled store. No requests are made here; a
// bad key surfaces on the first call.
func New(cfg config.Config) (*store.Store, error) {
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return nil, fmt.Errorf("supabase store requires SUPABASE_URL and SUPABASE_KEY")
	}

	restURL := strings.TrimRight(cfg.SupabaseURL, "/") + "/rest/v1"
	client := postgrest.NewClient(restURL, "public", map[string]string{
		"apikey":        cfg.SupabaseKey,
		"Authorization": "Bearer " + cfg.SupabaseKey,
	})
	if client.ClientError != nil {
		return nil, fmt.Errorf("create REST client: %w", client.ClientError)
	}

	b := &backend{
		client:    client,
		log:       logrus.WithField("store", "supabase"),
		backupDir: cfg.BackupDir,
	}
	return b.assemble(), nil
}

func (b *backend) assemble() *store.Store {
	return &store.Store{
		Leads:       leadRepo{b},
		Tasks:       taskRepo{b},
		Users:       userRepo{b},
		Lookups:     lookupRepo{b},
		Groups:      groupRepo{b},
		Templates:   templateRepo{b},
		Sequences:   sequenceRepo{b},
		BrokerLinks: brokerLinkRepo{b},
		Scripts:     scriptRepo{b},
		Settings:    settingRepo{b},
		Activity:    activityRepo{b},
		BackupFunc:  b.backup,
	}
}

// idParam formats an id for the REST filter syntax.
func idParam(id int64) string {
	return strconv.FormatInt(id, 10)
}

func idList(ids []int64) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idParam(id)
	}
	return out
}

var ascending = &postgrest.OrderOpts{Ascending: true}
var descending = &postgrest.OrderOpts{Ascending: false}
