package contact

import (
	"context"
	"sync"
	"testing"
	"time"

	domainContact "donation-hub/internal/domain/contact"
	appErrors "donation-hub/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContactRepo struct {
	mu       sync.Mutex
	messages []*domainContact.Message
}

func (r *fakeContactRepo) Create(_ context.Context, m *domainContact.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	cp := *m
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *fakeContactRepo) GetAll(_ context.Context) ([]*domainContact.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domainContact.Message, len(r.messages))
	for i, m := range r.messages {
		cp := *m
		out[i] = &cp
	}
	return out, nil
}

func TestSubmitStoresMessage(t *testing.T) {
	t.Parallel()

	repo := &fakeContactRepo{}
	service := NewService(repo)

	resp, err := service.Submit(context.Background(), &SubmitMessageRequest{
		Name:    "Dana Donor",
		Email:   "dana@example.com",
		Mobile:  "+1 555 0100",
		Message: "How do I donate cooked food?",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.ID)

	messages, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Dana Donor", messages[0].Name)
}

func TestSubmitSanitizesInput(t *testing.T) {
	t.Parallel()

	repo := &fakeContactRepo{}
	service := NewService(repo)

	resp, err := service.Submit(context.Background(), &SubmitMessageRequest{
		Name:    "  <b>Dana</b> ",
		Email:   " Dana@Example.COM ",
		Mobile:  " +1 555x0100 ",
		Message: "  Hello <script>alert(1)</script> there  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "&lt;b&gt;Dana&lt;/b&gt;", resp.Name)
	assert.Equal(t, "dana@example.com", resp.Email)
	assert.Equal(t, "+1 5550100", resp.Mobile)
	assert.NotContains(t, resp.Message, "<script>")
}

func TestSubmitRequiresFields(t *testing.T) {
	t.Parallel()

	repo := &fakeContactRepo{}
	service := NewService(repo)

	_, err := service.Submit(context.Background(), &SubmitMessageRequest{
		Name:   "Dana",
		Email:  "dana@example.com",
		Mobile: "+1 555 0100",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeValidation, appErrors.CodeOf(err))
	assert.Empty(t, repo.messages)
}
