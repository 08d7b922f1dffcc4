package events

import (
	"context"
	"testing"

	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestNilWriterDropsEverything(t *testing.T) {
	p := NewPublisher(nil)

	err := p.PublishActivity(context.Background(), &entity.ActivityLog{Action: "LOGIN"})
	assert.NoError(t, err)
	assert.NoError(t, p.Close())
}
