package nats

import (
	"testing"

	"robi-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "robi.events.QUERY_ANSWERED", Subject(events.QueryAnswered))
	assert.Equal(t, "robi.events.RESOURCES_RELOADED", Subject(events.ResourcesReloaded))
}
