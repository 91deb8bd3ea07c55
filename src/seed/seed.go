package seed

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/therive/therive-backend/src/dto"
	"github.com/therive/therive-backend/src/models"
	"github.com/therive/therive-backend/src/services"
)

// DefaultPassword is shared by every seeded account
const DefaultPassword = "therive-demo-1"

const maxUsers = 200

// Users registers count fake accounts through the auth service, each holding up to three intent tags.
// Email collisions are skipped.
func Users(ctx context.Context, auth services.AuthService, count int) ([]models.User, error) {
	if count < 1 {
		count = 1
	}
	if count > maxUsers {
		count = maxUsers
	}

	catalog := models.DefaultIntentTags()
	created := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		first, last := gofakeit.FirstName(), gofakeit.LastName()

		numTags := gofakeit.Number(0, 3)
		tags := make([]string, 0, numTags)
		for j := 0; j < numTags; j++ {
			tags = append(tags, catalog[gofakeit.Number(0, len(catalog)-1)].ID)
		}

		req := dto.SignupRequest{
			Name:         first + " " + last,
			Email:        fakeEmail(first, last),
			Password:     DefaultPassword,
			Bio:          gofakeit.Sentence(12),
			SelectedTags: tags,
		}

		user, _, err := auth.Register(ctx, req)
		if err != nil {
			if services.KindOf(err) == services.KindConflict {
				continue
			}
			return created, fmt.Errorf("seed user %s: %w", req.Email, err)
		}
		created = append(created, *user)
	}

	log.Printf("Seeded %d users", len(created))
	return created, nil
}

func fakeEmail(first, last string) string {
	local := strings.ToLower(first + "." + last)
	local = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, local)
	local = strings.Trim(local, ".")
	if local == "" {
		local = "member"
	}
	return fmt.Sprintf("%s%d@%s", local, gofakeit.Number(1, 9999), gofakeit.DomainName())
}
