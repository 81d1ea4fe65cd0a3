package bootstrap

import (
	"testing"

	"robi-be/internal/config"
	"robi-be/pkg/agent"
	"robi-be/pkg/catalog"
	"robi-be/pkg/intent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogConfigUsesMergedPriorityDocuments(t *testing.T) {
	cfg := config.Load()
	cfg.Resources.PriorityDocument = "Rooms_And_Tasks.pdf"

	profiles, err := agent.MergeProfiles([]byte(`
profiles:
  - category: navigation
    priority_document: NAVIGATION_control.pdf
`), agent.DefaultProfiles(cfg.Resources.PriorityDocument))
	require.NoError(t, err)

	cc := CatalogConfig(cfg, profiles)
	assert.Equal(t, map[intent.Category]string{
		intent.CategoryLocation:   "Rooms_And_Tasks.pdf",
		intent.CategoryNavigation: "NAVIGATION_control.pdf",
	}, cc.Priority)

	c := catalog.New(nil, cc, nil)
	c.SetDocuments([]catalog.Document{{Name: "A.pdf"}, {Name: "NAVIGATION_control.pdf"}})
	assert.True(t, c.IsPriority(intent.CategoryNavigation, catalog.Document{Name: "NAVIGATION_control.pdf"}))
	assert.Equal(t, "NAVIGATION_control.pdf", c.DocumentsFor(intent.CategoryNavigation)[0].Name)
}
