//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawnest/pawsearch/internal/domain"
	"github.com/pawnest/pawsearch/internal/service"
	"github.com/pawnest/pawsearch/internal/testutil"
)

func newTestPartner(name string, ptype domain.PartnerType) *domain.Partner {
	return &domain.Partner{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      ptype,
		Verified:  true,
		Status:    domain.PartnerStatusApproved,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestPartnerRepository_SearchPartners_TermMatching(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewPartnerRepository(pool)

	inName := newTestPartner("Dr. Asha Patel", domain.PartnerTypeVet)
	inBusiness := newTestPartner("Rahul Mehta", domain.PartnerTypeGroomer)
	inBusiness.BusinessName = "Asha Pet Spa"
	inBio := newTestPartner("Priya Shah", domain.PartnerTypeTrainer)
	inBio.Bio = "Trained under Dr. Asha for five years"
	inSpec := newTestPartner("Vikram Rao", domain.PartnerTypeVet)
	inSpec.Specializations = []string{"asha method", "surgery"}
	unrelated := newTestPartner("Boarding Bliss", domain.PartnerTypeBoarding)

	for _, p := range []*domain.Partner{inName, inBusiness, inBio, inSpec, unrelated} {
		require.NoError(t, repo.CreatePartner(ctx, p))
	}

	results, err := repo.SearchPartners(ctx, []string{"asha"}, service.PartnerFilter{})
	require.NoError(t, err)
	require.Len(t, results, 4)

	ids := make(map[string]bool)
	for _, p := range results {
		ids[p.ID] = true
	}
	assert.True(t, ids[inName.ID], "name match")
	assert.True(t, ids[inBusiness.ID], "business name match")
	assert.True(t, ids[inBio.ID], "bio match")
	assert.True(t, ids[inSpec.ID], "specialization match")
	assert.False(t, ids[unrelated.ID])
}

func TestPartnerRepository_SearchPartners_OnlyApprovedVerified(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewPartnerRepository(pool)

	listed := newTestPartner("Grooming Galaxy", domain.PartnerTypeGroomer)
	pending := newTestPartner("Grooming Garden", domain.PartnerTypeGroomer)
	pending.Status = domain.PartnerStatusPending
	unverified := newTestPartner("Grooming Grove", domain.PartnerTypeGroomer)
	unverified.Verified = false

	for _, p := range []*domain.Partner{listed, pending, unverified} {
		require.NoError(t, repo.CreatePartner(ctx, p))
	}

	results, err := repo.SearchPartners(ctx, []string{"grooming"}, service.PartnerFilter{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, listed.ID, results[0].ID)
}

func TestPartnerRepository_SearchPartners_Filters(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewPartnerRepository(pool)

	emergencyVet := newTestPartner("Night Owl Vet Clinic", domain.PartnerTypeVet)
	emergencyVet.Location = "Mumbai, Andheri West"
	emergencyVet.Emergency = true
	dayVet := newTestPartner("Daylight Vet Care", domain.PartnerTypeVet)
	dayVet.Location = "Mumbai, Bandra"
	puneGroomer := newTestPartner("Pune Pet Parlour", domain.PartnerTypeGroomer)
	puneGroomer.Location = "Pune"

	for _, p := range []*domain.Partner{emergencyVet, dayVet, puneGroomer} {
		require.NoError(t, repo.CreatePartner(ctx, p))
	}

	emergency := true
	results, err := repo.SearchPartners(ctx, nil, service.PartnerFilter{
		Type:      "vet",
		Location:  "mumbai",
		Emergency: &emergency,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, emergencyVet.ID, results[0].ID)
	assert.True(t, results[0].Emergency)
}

func TestPartnerRepository_SearchPartners_OnlineFilter(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewPartnerRepository(pool)

	online := newTestPartner("Tele-Vet India", domain.PartnerTypeVet)
	online.Online = true
	offline := newTestPartner("Walk-In Vet", domain.PartnerTypeVet)

	require.NoError(t, repo.CreatePartner(ctx, online))
	require.NoError(t, repo.CreatePartner(ctx, offline))

	wantOnline := true
	results, err := repo.SearchPartners(ctx, []string{"vet"}, service.PartnerFilter{Online: &wantOnline})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, online.ID, results[0].ID)
}

func TestPartnerRepository_SearchPartners_PreSortByRating(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewPartnerRepository(pool)

	top := newTestPartner("Top Trainer", domain.PartnerTypeTrainer)
	top.RatingAverage = 4.9
	top.ReviewCount = 10
	mid := newTestPartner("Mid Trainer", domain.PartnerTypeTrainer)
	mid.RatingAverage = 4.2
	mid.ReviewCount = 40
	tied := newTestPartner("Tied Trainer", domain.PartnerTypeTrainer)
	tied.RatingAverage = 4.2
	tied.ReviewCount = 80

	for _, p := range []*domain.Partner{mid, top, tied} {
		require.NoError(t, repo.CreatePartner(ctx, p))
	}

	results, err := repo.SearchPartners(ctx, []string{"trainer"}, service.PartnerFilter{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, top.ID, results[0].ID)
	// Equal rating: more reviews first.
	assert.Equal(t, tied.ID, results[1].ID)
	assert.Equal(t, mid.ID, results[2].ID)
}
