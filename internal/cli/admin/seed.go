package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pawnest/pawsearch/internal/config"
	"github.com/pawnest/pawsearch/internal/database"
	"github.com/pawnest/pawsearch/internal/domain"
	"github.com/pawnest/pawsearch/internal/repository"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo data into the database",
		Long:  "Insert a small set of demo questions, partners, dogs and health logs for local development",
		RunE:  runSeed,
	}

	cmd.Flags().String("owner", "demo-user", "Owner ID for the seeded dogs and health logs")

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := database.NewPool(ctx, database.Config{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	owner, _ := cmd.Flags().GetString("owner")
	now := time.Now()

	questionRepo := repository.NewQuestionRepository(pool)
	partnerRepo := repository.NewPartnerRepository(pool)
	healthLogRepo := repository.NewHealthLogRepository(pool)

	questions := []*domain.Question{
		{
			ID:       uuid.New().String(),
			Title:    "My dog keeps scratching his ears",
			Content:  "Golden retriever, 3 years old, started scratching constantly last week. Could it be mites?",
			Category: "health",
			Language: "en",
			Status:   domain.QuestionStatusActive,
			IsUrgent: false,
			Upvotes:  14,
			Views:    230,
			Tags:     []string{"ears", "itching", "golden-retriever"},
			AuthorID:   owner,
			AuthorName: "Demo User",
			CreatedAt:  now.Add(-5 * 24 * time.Hour),
		},
		{
			ID:        uuid.New().String(),
			Title:     "Puppy ate chocolate, what should I do?",
			Content:   "My 4 month old puppy got into a bar of dark chocolate. He seems fine but I am worried.",
			Category:  "emergency",
			Language:  "en",
			Status:    domain.QuestionStatusActive,
			IsUrgent:  true,
			Upvotes:   42,
			Views:     1200,
			Tags:      []string{"chocolate", "poisoning", "puppy"},
			AuthorID:  owner,
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:        uuid.New().String(),
			Title:     "कुत्ते को बुखार है, क्या करूं?",
			Content:   "मेरे कुत्ते को कल से बुखार है और वह खाना नहीं खा रहा।",
			Category:  "health",
			Language:  "hi",
			Status:    domain.QuestionStatusActive,
			IsUrgent:  true,
			Upvotes:   8,
			Views:     95,
			Tags:      []string{"बुखार", "fever"},
			AuthorID:  owner,
			CreatedAt: now.Add(-26 * time.Hour),
		},
	}

	for _, q := range questions {
		if err := domain.ValidateQuestion(q); err != nil {
			return fmt.Errorf("invalid seed question: %w", err)
		}
		if err := questionRepo.CreateQuestion(ctx, q); err != nil {
			return fmt.Errorf("failed to seed question: %w", err)
		}
	}

	partners := []*domain.Partner{
		{
			ID:              uuid.New().String(),
			Name:            "Dr. Asha Patel",
			BusinessName:    "Happy Paws Veterinary Clinic",
			Bio:             "Small animal vet with 12 years of experience. Emergency surgery and dermatology.",
			Type:            domain.PartnerTypeVet,
			Location:        "Mumbai",
			RatingAverage:   4.8,
			ReviewCount:     310,
			Specializations: []string{"surgery", "dermatology", "emergency"},
			Verified:        true,
			Emergency:       true,
			Online:          true,
			Status:          domain.PartnerStatusApproved,
			CreatedAt:       now.Add(-200 * 24 * time.Hour),
		},
		{
			ID:              uuid.New().String(),
			Name:            "Rahul Mehta",
			BusinessName:    "Pawfect Grooming Studio",
			Bio:             "Full service grooming for all breeds. Gentle handling for anxious dogs.",
			Type:            domain.PartnerTypeGroomer,
			Location:        "Pune",
			RatingAverage:   4.5,
			ReviewCount:     128,
			Specializations: []string{"grooming", "nail-trimming"},
			Verified:        true,
			Status:          domain.PartnerStatusApproved,
			CreatedAt:       now.Add(-90 * 24 * time.Hour),
		},
	}

	for _, p := range partners {
		if err := domain.ValidatePartner(p); err != nil {
			return fmt.Errorf("invalid seed partner: %w", err)
		}
		if err := partnerRepo.CreatePartner(ctx, p); err != nil {
			return fmt.Errorf("failed to seed partner: %w", err)
		}
	}

	dog := &domain.Dog{
		ID:      uuid.New().String(),
		OwnerID: owner,
		Name:    "Bruno",
		Breed:   "Labrador",
	}
	if err := healthLogRepo.CreateDog(ctx, dog); err != nil {
		return fmt.Errorf("failed to seed dog: %w", err)
	}

	logs := []*domain.HealthLog{
		{
			ID:       uuid.New().String(),
			DogID:    dog.ID,
			Date:     now.Add(-3 * 24 * time.Hour),
			Notes:    "Vomited twice after breakfast, skipped lunch. Seemed tired in the evening.",
			Activity: "low",
			Appetite: "poor",
			Mood:     "lethargic",
		},
		{
			ID:       uuid.New().String(),
			DogID:    dog.ID,
			Date:     now.Add(-24 * time.Hour),
			Notes:    "Back to normal, long walk in the park and full meals.",
			Activity: "high",
			Appetite: "good",
			Mood:     "playful",
		},
	}

	for _, h := range logs {
		if err := domain.ValidateHealthLog(h); err != nil {
			return fmt.Errorf("invalid seed health log: %w", err)
		}
		if err := healthLogRepo.CreateHealthLog(ctx, h); err != nil {
			return fmt.Errorf("failed to seed health log: %w", err)
		}
	}

	fmt.Printf("seeded %d questions, %d partners, 1 dog, %d health logs\n",
		len(questions), len(partners), len(logs))
	return nil
}
