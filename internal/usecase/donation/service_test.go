package donation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	domainDonation "donation-hub/internal/domain/donation"
	domainUser "donation-hub/internal/domain/user"
	appErrors "donation-hub/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo keeps users in insertion order so FirstByRole is
// deterministic.
type fakeUserRepo struct {
	domainUser.Repository

	mu    sync.Mutex
	users []*domainUser.User
}

func (r *fakeUserRepo) add(u *domainUser.User) *domainUser.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users = append(r.users, u)
	return u
}

func (r *fakeUserRepo) remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return
		}
	}
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == userID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) FirstByRole(_ context.Context, role domainUser.Role) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Role == role {
			cp := *u
			return &cp, nil
		}
	}
	if role == domainUser.RoleAdmin {
		return nil, domainUser.ErrAdminNotFound
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role domainUser.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// fakeDonationRepo mirrors the conditional-update semantics of the Postgres
// repository: transition methods match on the expected prior status and
// report ErrStatusConflict when nothing matched.
type fakeDonationRepo struct {
	mu        sync.Mutex
	donations map[uuid.UUID]*domainDonation.Donation
	users     *fakeUserRepo

	// beforeTransition runs between the service's read and its conditional
	// update, to exercise concurrent-writer interleavings.
	beforeTransition func()
}

func newFakeDonationRepo(users *fakeUserRepo) *fakeDonationRepo {
	return &fakeDonationRepo{
		donations: make(map[uuid.UUID]*domainDonation.Donation),
		users:     users,
	}
}

func (r *fakeDonationRepo) Create(_ context.Context, d *domainDonation.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	r.donations[d.ID] = &cp
	return nil
}

func (r *fakeDonationRepo) GetByID(_ context.Context, donationID uuid.UUID) (*domainDonation.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(donationID)
}

func (r *fakeDonationRepo) getLocked(donationID uuid.UUID) (*domainDonation.Donation, error) {
	d, ok := r.donations[donationID]
	if !ok {
		return nil, domainDonation.ErrDonationNotFound
	}

	cp := *d
	for _, u := range r.users.users {
		if u.ID == d.DonorID {
			cp.Donor = &domainDonation.DonorInfo{
				ID: u.ID, FirstName: u.FirstName, LastName: u.LastName,
				Email: u.Email, Phone: u.Phone,
			}
		}
		if d.AgentID != nil && u.ID == *d.AgentID {
			cp.Agent = &domainDonation.AgentInfo{
				ID: u.ID, FirstName: u.FirstName, LastName: u.LastName,
				Email: u.Email, Phone: u.Phone,
			}
		}
	}
	return &cp, nil
}

func (r *fakeDonationRepo) List(_ context.Context, filter *domainDonation.Filter) ([]*domainDonation.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domainDonation.Donation
	for id, d := range r.donations {
		if filter.DonorID != nil && d.DonorID != *filter.DonorID {
			continue
		}
		if filter.AgentID != nil && (d.AgentID == nil || *d.AgentID != *filter.AgentID) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, d.Status) {
			continue
		}
		cp, _ := r.getLocked(id)
		out = append(out, cp)
	}
	return out, nil
}

func (r *fakeDonationRepo) UpdateStatusFrom(_ context.Context, donationID uuid.UUID, expected []domainDonation.Status, next domainDonation.Status) error {
	if hook := r.beforeTransition; hook != nil {
		r.beforeTransition = nil
		hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.donations[donationID]
	if !ok {
		return domainDonation.ErrDonationNotFound
	}
	if !containsStatus(expected, d.Status) {
		return domainDonation.ErrStatusConflict
	}
	d.Status = next
	d.UpdatedAt = time.Now()
	return nil
}

func (r *fakeDonationRepo) AssignAgent(_ context.Context, donationID, agentID uuid.UUID, message *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.donations[donationID]
	if !ok {
		return domainDonation.ErrDonationNotFound
	}
	if d.Status != domainDonation.StatusAccepted {
		return domainDonation.ErrStatusConflict
	}
	d.Status = domainDonation.StatusAssigned
	d.AgentID = &agentID
	d.AdminToAgentMsg = message
	d.UpdatedAt = time.Now()
	return nil
}

func (r *fakeDonationRepo) MarkCollected(_ context.Context, donationID uuid.UUID, collectedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.donations[donationID]
	if !ok {
		return domainDonation.ErrDonationNotFound
	}
	if d.Status != domainDonation.StatusAssigned {
		return domainDonation.ErrStatusConflict
	}
	d.Status = domainDonation.StatusCollected
	d.CollectedAt = &collectedAt
	d.UpdatedAt = time.Now()
	return nil
}

func (r *fakeDonationRepo) DeleteRejected(_ context.Context, donationID, donorID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.donations[donationID]
	if !ok || d.DonorID != donorID || d.Status != domainDonation.StatusRejected {
		return domainDonation.ErrDonationNotFound
	}
	delete(r.donations, donationID)
	return nil
}

func (r *fakeDonationRepo) CountByStatus(_ context.Context, filter *domainDonation.Filter) (*domainDonation.StatusCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := &domainDonation.StatusCounts{}
	for _, d := range r.donations {
		if filter != nil {
			if filter.DonorID != nil && d.DonorID != *filter.DonorID {
				continue
			}
			if filter.AgentID != nil && (d.AgentID == nil || *d.AgentID != *filter.AgentID) {
				continue
			}
		}
		switch d.Status {
		case domainDonation.StatusPending:
			counts.Pending++
		case domainDonation.StatusAccepted:
			counts.Accepted++
		case domainDonation.StatusRejected:
			counts.Rejected++
		case domainDonation.StatusAssigned:
			counts.Assigned++
		case domainDonation.StatusCollected:
			counts.Collected++
		}
	}
	return counts, nil
}

func containsStatus(statuses []domainDonation.Status, s domainDonation.Status) bool {
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeDispatcher struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (d *fakeDispatcher) Send(to, subject, body string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail {
		return fmt.Errorf("smtp unavailable")
	}
	d.sent = append(d.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (d *fakeDispatcher) sentTo(email string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	var n int
	for _, m := range d.sent {
		if m.to == email {
			n++
		}
	}
	return n
}

func (d *fakeDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sent)
}

type testEnv struct {
	service    *Service
	users      *fakeUserRepo
	donations  *fakeDonationRepo
	dispatcher *fakeDispatcher

	admin *domainUser.User
	donor *domainUser.User
	agent *domainUser.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := &fakeUserRepo{}
	donations := newFakeDonationRepo(users)
	dispatcher := &fakeDispatcher{}

	env := &testEnv{
		service:    NewService(donations, users, dispatcher),
		users:      users,
		donations:  donations,
		dispatcher: dispatcher,
	}

	env.admin = users.add(&domainUser.User{
		FirstName: "Ada", LastName: "Admin",
		Email: "admin@example.com", Role: domainUser.RoleAdmin,
	})
	env.donor = users.add(&domainUser.User{
		FirstName: "Dana", LastName: "Donor",
		Email: "donor@example.com", Role: domainUser.RoleDonor,
	})
	env.agent = users.add(&domainUser.User{
		FirstName: "Avery", LastName: "Agent",
		Email: "agent@example.com", Role: domainUser.RoleAgent,
	})

	return env
}

func (e *testEnv) actor(u *domainUser.User) Actor {
	return Actor{ID: u.ID, Role: u.Role}
}

func (e *testEnv) submitReq() *SubmitDonationRequest {
	return &SubmitDonationRequest{
		FoodType: "Cooked rice",
		Quantity: "5 kg",
		Phone:    "+1 555 0100",
		Address:  "12 Market Street",
	}
}

func (e *testEnv) submit(t *testing.T) uuid.UUID {
	t.Helper()
	result, err := e.service.Submit(context.Background(), e.actor(e.donor), e.submitReq())
	require.NoError(t, err)
	return result.Donation.ID
}

func (e *testEnv) status(t *testing.T, id uuid.UUID) domainDonation.Status {
	t.Helper()
	d, err := e.donations.GetByID(context.Background(), id)
	require.NoError(t, err)
	return d.Status
}

func TestSubmitCreatesPendingAndNotifiesAdmin(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	result, err := env.service.Submit(context.Background(), env.actor(env.donor), env.submitReq())
	require.NoError(t, err)

	assert.Equal(t, domainDonation.StatusPending, result.Donation.Status)
	assert.True(t, result.Notified)
	assert.Equal(t, 1, env.dispatcher.sentTo(env.admin.Email))
}

func TestSubmitRequiresPhone(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	req := env.submitReq()
	req.Phone = ""

	_, err := env.service.Submit(context.Background(), env.actor(env.donor), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeValidation, appErrors.CodeOf(err))
	assert.Empty(t, env.donations.donations)
	assert.Zero(t, env.dispatcher.count())
}

func TestSubmitDeniedForNonDonors(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	for _, u := range []*domainUser.User{env.admin, env.agent} {
		_, err := env.service.Submit(context.Background(), env.actor(u), env.submitReq())
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeAuthorization, appErrors.CodeOf(err))
	}
}

func TestDecisionsAreAdminOnly(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	id := env.submit(t)

	for _, u := range []*domainUser.User{env.donor, env.agent} {
		_, err := env.service.Accept(context.Background(), env.actor(u), id)
		assert.Equal(t, appErrors.CodeAuthorization, appErrors.CodeOf(err))

		_, err = env.service.Reject(context.Background(), env.actor(u), id)
		assert.Equal(t, appErrors.CodeAuthorization, appErrors.CodeOf(err))

		_, err = env.service.Assign(context.Background(), env.actor(u), id,
			&AssignAgentRequest{AgentID: env.agent.ID})
		assert.Equal(t, appErrors.CodeAuthorization, appErrors.CodeOf(err))
	}

	assert.Equal(t, domainDonation.StatusPending, env.status(t, id))
}

func TestAcceptNotifiesDonor(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	id := env.submit(t)

	result, err := env.service.Accept(context.Background(), env.actor(env.admin), id)
	require.NoError(t, err)

	assert.Equal(t, domainDonation.StatusAccepted, result.Donation.Status)
	assert.True(t, result.Notified)
	assert.Equal(t, 1, env.dispatcher.sentTo(env.donor.Email))
}

func TestAcceptIsIdempotent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	id := env.submit(t)

	_, err := env.service.Accept(context.Background(), env.actor(env.admin), id)
	require.NoError(t, err)

	// One notification per call, including the repeat.
	result, err := env.service.Accept(context.Background(), env.actor(env.admin), id)
	require.NoError(t, err)

	assert.Equal(t, domainDonation.StatusAccepted, result.Donation.Status)
	assert.Equal(t, 2, env.dispatcher.sentTo(env.donor.Email))
}

func TestDecisionWithoutDonorIsDegraded(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	id := env.submit(t)

	// The donor relation no longer resolves, so the accept notice has no
	// recipient. The decision must still land, reported as degraded.
	env.users.remove(env.donor.ID)

	result, err := env.service.Accept(context.Background(), env.actor(env.admin), id)
	require.NoError(t, err)

	assert.Equal(t, domainDonation.StatusAccepted, result.Donation.Status)
	assert.False(t, result.Notified)
	assert.NotEmpty(t, result.NotifyError)
	assert.Equal(t, domainDonation.StatusAccepted, env.status(t, id))
}

func TestSubmitSanitizesInput(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	req := env.submitReq()
	req.FoodType = "  <b>Cooked rice</b> "
	req.Address = " 12 Market Street <script>alert(1)</script> "

	result, err := env.service.Submit(context.Background(), env.actor(env.donor), req)
	require.NoError(t, err)

	assert.Equal(t, "&lt;b&gt;Cooked rice&lt;/b&gt;", result.Donation.FoodType)
	assert.NotContains(t, result.Donation.Address, "<script>")
}

func TestRejectFromAcceptedAllowed(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	id := env.submit(t)

	_, err := env.service.Accept(context.Background(), env.actor(env.admin), id)
	require.NoError(t, err)

	result, err := env.service.Reject(context.Background(), env.actor(env.admin), id)
	require.NoError(t, err)
	assert.Equal(t, domainDonation.StatusRejected, result.Donation.Status)
}

func TestAssignRequiresAgentRole(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	id := env.submit(t)

	_, err := env.service.Accept(context.Background(), env.actor(env.admin), id)
	require.NoError(t, err)

	_, err = env.service.Assign(context.Background(), env.actor(env.admin), id,
		&AssignAgentRequest{AgentID: env.donor.ID})
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeNotFound, appErrors.CodeOf(err))
	assert.ErrorIs(t, err, domainUser.ErrAgentNotFound)

	assert.Equal(t, domainDonation.StatusAccepted, env.status(t, id))
}

func TestAssignUnknownAgent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	id := env.submit(t)

	_, err := env.service.Accept(context.Background(), env.actor(env.admin), id)
	require.NoError(t, err)

	_, err = env.service.Assign(context.Background(), env.actor(env.admin), id,
		&AssignAgentRequest{AgentID: uuid.New()})
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeNotFound, appErrors.CodeOf(err))
}

func TestAssignNotifiesAgentAndDonor(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	id := env.submit(t)

	_, err := env.service.Accept(context.Background(), env.actor(env.admin), id)
	require.NoError(t, err)

	msg := "Pick up before noon"
	result, err := env.service.Assign(context.Background(), env.actor(env.admin), id,
		&AssignAgentRequest{AgentID: env.agent.ID, Message: &msg})
	require.NoError(t, err)

	assert.Equal(t, domainDonation.StatusAssigned, result.Donation.Status)
	require.NotNil(t, result.Donation.Agent)
	assert.Equal(t, env.agent.ID, result.Donation.Agent.ID)
	require.NotNil(t, result.Donation.AdminToAgentMsg)
	assert.Equal(t, msg, *result.Donation.AdminToAgentMsg)
	assert.Equal(t, 1, env.dispatcher.sentTo(env.agent.Email))
	assert.Equal(t, 2, env.dispatcher.sentTo(env.donor.Email)) // accept + assign
}

func TestCollectOnlyByAssignedAgent(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	id := env.submit(t)

	_, err := env.service.Accept(context.Background(), env.actor(env.admin), id)
	require.NoError(t, err)
	_, err = env.service.Assign(context.Background(), env.actor(env.admin), id,
		&AssignAgentRequest{AgentID: env.agent.ID})
	require.NoError(t, err)

	other := env.users.add(&domainUser.User{
		FirstName: "Olly", LastName: "Other",
		Email: "other-agent@example.com", Role: domainUser.RoleAgent,
	})

	_, err = env.service.Collect(context.Background(), env.actor(other), id)
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeAuthorization, appErrors.CodeOf(err))
	assert.Equal(t, domainDonation.StatusAssigned, env.status(t, id))

	result, err := env.service.Collect(context.Background(), env.actor(env.agent), id)
	require.NoError(t, err)
	assert.Equal(t, domainDonation.StatusCollected, result.Donation.Status)
	assert.NotNil(t, result.Donation.CollectedAt)
	assert.Equal(t, 2, env.dispatcher.sentTo(env.admin.Email)) // submit + collect notices
}

func TestCollectWithoutAdminIsDegradedSuccess(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	id := env.submit(t)

	_, err := env.service.Accept(context.Background(), env.actor(env.admin), id)
	require.NoError(t, err)
	_, err = env.service.Assign(context.Background(), env.actor(env.admin), id,
		&AssignAgentRequest{AgentID: env.agent.ID})
	require.NoError(t, err)

	env.users.remove(env.admin.ID)

	result, err := env.service.Collect(context.Background(), env.actor(env.agent), id)
	require.NoError(t, err)

	assert.Equal(t, domainDonation.StatusCollected, result.Donation.Status)
	assert.False(t, result.Notified)
	assert.NotEmpty(t, result.NotifyError)
	assert.Equal(t, domainDonation.StatusCollected, env.status(t, id))
}

func TestNotificationFailureDoesNotRollBack(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	id := env.submit(t)

	env.dispatcher.fail = true

	result, err := env.service.Accept(context.Background(), env.actor(env.admin), id)
	require.NoError(t, err)

	assert.Equal(t, domainDonation.StatusAccepted, result.Donation.Status)
	assert.False(t, result.Notified)
	assert.NotEmpty(t, result.NotifyError)
	assert.Equal(t, domainDonation.StatusAccepted, env.status(t, id))
}

func TestDeleteRejected(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	id := env.submit(t)

	// Wrong status first.
	err := env.service.DeleteRejected(context.Background(), env.actor(env.donor), id)
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeConflict, appErrors.CodeOf(err))

	_, err = env.service.Reject(context.Background(), env.actor(env.admin), id)
	require.NoError(t, err)

	// Not the owner.
	stranger := env.users.add(&domainUser.User{
		FirstName: "Sam", LastName: "Stranger",
		Email: "other-donor@example.com", Role: domainUser.RoleDonor,
	})
	err = env.service.DeleteRejected(context.Background(), env.actor(stranger), id)
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeAuthorization, appErrors.CodeOf(err))

	// Owner succeeds.
	err = env.service.DeleteRejected(context.Background(), env.actor(env.donor), id)
	require.NoError(t, err)

	_, err = env.donations.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, domainDonation.ErrDonationNotFound)
}

func TestConcurrentDecisionConflicts(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	id := env.submit(t)

	// Another admin rejects between this admin's read and write.
	env.donations.beforeTransition = func() {
		require.NoError(t, env.donations.UpdateStatusFrom(context.Background(), id,
			[]domainDonation.Status{domainDonation.StatusPending}, domainDonation.StatusRejected))
	}

	_, err := env.service.Accept(context.Background(), env.actor(env.admin), id)
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeConflict, appErrors.CodeOf(err))
	assert.ErrorIs(t, err, domainDonation.ErrStatusConflict)
	assert.Equal(t, domainDonation.StatusRejected, env.status(t, id))
}

func TestFullLifecycle(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.submit(t)
	assert.Equal(t, domainDonation.StatusPending, env.status(t, id))

	_, err := env.service.Accept(ctx, env.actor(env.admin), id)
	require.NoError(t, err)
	assert.Equal(t, domainDonation.StatusAccepted, env.status(t, id))

	_, err = env.service.Assign(ctx, env.actor(env.admin), id,
		&AssignAgentRequest{AgentID: env.agent.ID})
	require.NoError(t, err)
	assert.Equal(t, domainDonation.StatusAssigned, env.status(t, id))

	_, err = env.service.Collect(ctx, env.actor(env.agent), id)
	require.NoError(t, err)

	d, err := env.donations.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domainDonation.StatusCollected, d.Status)
	require.NotNil(t, d.AgentID)
	assert.Equal(t, env.agent.ID, *d.AgentID)
	assert.NotNil(t, d.CollectedAt)

	// Donor heard about accept, assignment and collection.
	assert.Equal(t, 3, env.dispatcher.sentTo(env.donor.Email))
	// Admin heard about submission and collection.
	assert.Equal(t, 2, env.dispatcher.sentTo(env.admin.Email))
	assert.Equal(t, 1, env.dispatcher.sentTo(env.agent.Email))
}

func TestAgentSetIffAssignedOrCollected(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.submit(t)
	d, _ := env.donations.GetByID(ctx, id)
	assert.Nil(t, d.AgentID)

	_, err := env.service.Accept(ctx, env.actor(env.admin), id)
	require.NoError(t, err)
	d, _ = env.donations.GetByID(ctx, id)
	assert.Nil(t, d.AgentID)

	_, err = env.service.Assign(ctx, env.actor(env.admin), id,
		&AssignAgentRequest{AgentID: env.agent.ID})
	require.NoError(t, err)
	d, _ = env.donations.GetByID(ctx, id)
	assert.NotNil(t, d.AgentID)

	_, err = env.service.Collect(ctx, env.actor(env.agent), id)
	require.NoError(t, err)
	d, _ = env.donations.GetByID(ctx, id)
	assert.NotNil(t, d.AgentID)
}

func TestDonorLists(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	active := env.submit(t)
	done := env.submit(t)

	_, err := env.service.Accept(ctx, env.actor(env.admin), done)
	require.NoError(t, err)
	_, err = env.service.Assign(ctx, env.actor(env.admin), done,
		&AssignAgentRequest{AgentID: env.agent.ID})
	require.NoError(t, err)
	_, err = env.service.Collect(ctx, env.actor(env.agent), done)
	require.NoError(t, err)

	pending, err := env.service.ListForDonor(ctx, env.donor.ID, false)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, active, pending[0].ID)

	previous, err := env.service.ListForDonor(ctx, env.donor.ID, true)
	require.NoError(t, err)
	require.Len(t, previous, 1)
	assert.Equal(t, done, previous[0].ID)
}

func TestAgentListsAndView(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.submit(t)
	_, err := env.service.Accept(ctx, env.actor(env.admin), id)
	require.NoError(t, err)
	_, err = env.service.Assign(ctx, env.actor(env.admin), id,
		&AssignAgentRequest{AgentID: env.agent.ID})
	require.NoError(t, err)

	assigned, err := env.service.ListForAgent(ctx, env.agent.ID, false)
	require.NoError(t, err)
	require.Len(t, assigned, 1)

	other := env.users.add(&domainUser.User{
		FirstName: "Olly", LastName: "Other",
		Email: "other-agent2@example.com", Role: domainUser.RoleAgent,
	})
	_, err = env.service.GetForAgent(ctx, env.actor(other), id)
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeAuthorization, appErrors.CodeOf(err))

	d, err := env.service.GetForAgent(ctx, env.actor(env.agent), id)
	require.NoError(t, err)
	assert.Equal(t, id, d.ID)
}

func TestDashboards(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.submit(t)
	env.submit(t)

	_, err := env.service.Accept(ctx, env.actor(env.admin), first)
	require.NoError(t, err)

	adminDash, err := env.service.AdminDashboard(ctx, env.actor(env.admin))
	require.NoError(t, err)
	assert.Equal(t, int64(1), adminDash.NumAdmins)
	assert.Equal(t, int64(1), adminDash.NumDonors)
	assert.Equal(t, int64(1), adminDash.NumAgents)
	assert.Equal(t, int64(1), adminDash.NumPendingDonations)
	assert.Equal(t, int64(1), adminDash.NumAcceptedDonations)

	donorDash, err := env.service.DonorDashboard(ctx, env.donor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), donorDash.NumPendingDonations)
	assert.Equal(t, int64(1), donorDash.NumAcceptedDonations)

	agentDash, err := env.service.AgentDashboard(ctx, env.agent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), agentDash.NumAssignedDonations)
}

func TestGetForAdminUnknownDonation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := env.service.GetForAdmin(context.Background(), env.actor(env.admin), uuid.New())
	require.Error(t, err)
	assert.Equal(t, appErrors.CodeNotFound, appErrors.CodeOf(err))
	assert.True(t, errors.Is(err, domainDonation.ErrDonationNotFound))
}
