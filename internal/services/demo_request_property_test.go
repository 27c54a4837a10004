package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"neurobiomark/internal/domain"
)

var allStatuses = []domain.DemoRequestStatus{domain.StatusNew, domain.StatusContacted, domain.StatusResponded}

// TestDemoRequestService_ListPagesCoverFilteredSet walks every page for a status
// filter and checks the concatenation equals the filtered set, newest first,
// without duplicates or omissions.
func TestDemoRequestService_ListPagesCoverFilteredSet(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("pages partition the filtered set", prop.ForAll(
		func(n, seed, statusIdx int) bool {
			repo := &fakeDemoRequestRepo{}
			svc := NewDemoRequestService(repo, &fakeCaptcha{ok: true}, &fakeEmailService{}, &fakeSink{}, &inlineTasks{}, DemoRequestConfig{})
			base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			for i := 0; i < n; i++ {
				// Some requests share a timestamp so ordering ties are exercised.
				created := base.Add(time.Duration((i*seed)%17) * time.Minute)
				r := domain.NewDemoRequest(fmt.Sprintf("user %d", i), fmt.Sprintf("u%d@example.org", i), "purpose", "", created)
				r.Status = allStatuses[(i+seed)%len(allStatuses)]
				_ = repo.Create(context.Background(), r)
			}

			status := ""
			filter := domain.DemoRequestFilter{}
			if statusIdx < len(allStatuses) {
				status = string(allStatuses[statusIdx])
				filter.Status = allStatuses[statusIdx]
			}
			want := repo.filtered(filter)

			first, err := svc.List(context.Background(), domain.DemoRequestQuery{Page: 1, Status: status})
			if err != nil {
				return false
			}
			var got []*domain.DemoRequest
			for page := 1; page <= first.Pages; page++ {
				res, err := svc.List(context.Background(), domain.DemoRequestQuery{Page: page, Status: status})
				if err != nil || res.Pages != first.Pages {
					return false
				}
				got = append(got, res.Items...)
			}
			if len(got) != len(want) {
				return false
			}
			seen := map[string]bool{}
			for i := range got {
				if got[i].ID != want[i].ID || seen[got[i].ID] {
					return false
				}
				if i > 0 && got[i].CreatedAt.After(got[i-1].CreatedAt) {
					return false
				}
				seen[got[i].ID] = true
			}
			return first.Pages == domain.TotalPages(len(want), AdminPageSize)
		},
		gen.IntRange(0, 45),
		gen.IntRange(1, 50),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}
