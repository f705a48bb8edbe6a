package usecase

import (
	"context"
	"math"
	"sort"
	"strings"

	"skillswap/internal/domain/entity"
	"skillswap/internal/domain/repository"
	"skillswap/pkg/errors"
)

const (
	categoryBaseScore  = 20.0
	skillOverlapWeight = 25.0
	ratingBonusWeight  = 2.0
	qualityThreshold   = 4.5
	qualityBonus       = 5.0
	maxScore           = 100
)

// Opportunity is a discovered reciprocal offer/need pairing between the
// calling user and another user, scored but not yet a formal proposal.
type Opportunity struct {
	MyNeed     *entity.Service `json:"my_need"`
	MyOffer    *entity.Service `json:"my_offer"`
	TheirOffer *entity.Service `json:"their_offer"`
	TheirNeed  *entity.Service `json:"their_need"`
	Owner      *OwnerSummary   `json:"owner"`
	Score      int             `json:"score"`
}

type OwnerSummary struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Title       string  `json:"title,omitempty"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Verified    bool    `json:"verified"`
}

// MatcherUseCase discovers mutually beneficial swap opportunities. It is a
// pure read over the catalog; the score is a deterministic function of the
// involved services and the counterpart's aggregate rating.
type MatcherUseCase struct {
	serviceRepo repository.ServiceRepository
	userRepo    repository.UserRepository
}

func NewMatcherUseCase(serviceRepo repository.ServiceRepository, userRepo repository.UserRepository) *MatcherUseCase {
	return &MatcherUseCase{
		serviceRepo: serviceRepo,
		userRepo:    userRepo,
	}
}

func (uc *MatcherUseCase) FindOpportunities(ctx context.Context, userID string) ([]*Opportunity, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, errors.NotFound("User", err)
	}

	mine, err := uc.serviceRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	var myOffers, myNeeds []*entity.Service
	for _, s := range mine {
		if !s.Active {
			continue
		}
		switch s.Kind {
		case entity.ServiceKindOffer:
			myOffers = append(myOffers, s)
		case entity.ServiceKindNeed:
			myNeeds = append(myNeeds, s)
		}
	}

	if len(myOffers) == 0 || len(myNeeds) == 0 {
		return []*Opportunity{}, nil
	}

	owners := map[string]*entity.User{}
	theirNeedsByOwner := map[string][]*entity.Service{}
	seen := map[string]bool{}

	opportunities := []*Opportunity{}

	for _, myNeed := range myNeeds {
		candidates, err := uc.serviceRepo.ListActive(ctx, repository.ServiceFilter{
			Category:     myNeed.Category,
			Kind:         entity.ServiceKindOffer,
			ExcludeOwner: userID,
		})
		if err != nil {
			return nil, err
		}

		for _, theirOffer := range candidates {
			owner, ok := owners[theirOffer.OwnerID]
			if !ok {
				owner, err = uc.userRepo.GetByID(ctx, theirOffer.OwnerID)
				if err != nil {
					continue
				}
				owners[theirOffer.OwnerID] = owner

				theirs, err := uc.serviceRepo.ListByOwner(ctx, theirOffer.OwnerID)
				if err != nil {
					return nil, err
				}
				for _, s := range theirs {
					if s.Active && s.Kind == entity.ServiceKindNeed {
						theirNeedsByOwner[theirOffer.OwnerID] = append(theirNeedsByOwner[theirOffer.OwnerID], s)
					}
				}
			}

			if owner.Status != "active" {
				continue
			}

			for _, theirNeed := range theirNeedsByOwner[theirOffer.OwnerID] {
				for _, myOffer := range myOffers {
					if !strings.EqualFold(myOffer.Category, theirNeed.Category) {
						continue
					}

					key := myNeed.ID + "|" + theirOffer.ID + "|" + theirNeed.ID + "|" + myOffer.ID
					if seen[key] {
						continue
					}
					seen[key] = true

					opportunities = append(opportunities, &Opportunity{
						MyNeed:     myNeed,
						MyOffer:    myOffer,
						TheirOffer: theirOffer,
						TheirNeed:  theirNeed,
						Owner: &OwnerSummary{
							ID:          owner.ID,
							DisplayName: owner.DisplayName,
							Title:       owner.Title,
							Rating:      owner.Rating,
							ReviewCount: owner.ReviewCount,
							Verified:    owner.Verified,
						},
						Score: scoreOpportunity(myNeed, myOffer, theirOffer, theirNeed, owner.Rating),
					})
				}
			}
		}
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		if opportunities[i].Score != opportunities[j].Score {
			return opportunities[i].Score > opportunities[j].Score
		}
		if opportunities[i].Owner.Rating != opportunities[j].Owner.Rating {
			return opportunities[i].Owner.Rating > opportunities[j].Owner.Rating
		}
		return opportunities[i].TheirOffer.CreatedAt.After(opportunities[j].TheirOffer.CreatedAt)
	})

	return opportunities, nil
}

// scoreOpportunity combines skill overlap in both directions of the swap, a
// rating bonus for the counterpart and the reciprocal category base. Same
// inputs always yield the same score.
func scoreOpportunity(myNeed, myOffer, theirOffer, theirNeed *entity.Service, ownerRating float64) int {
	score := categoryBaseScore

	score += skillOverlapWeight * skillOverlap(myNeed.Skills, theirOffer.Skills)
	score += skillOverlapWeight * skillOverlap(theirNeed.Skills, myOffer.Skills)

	score += ratingBonusWeight * ownerRating
	if ownerRating >= qualityThreshold {
		score += qualityBonus
	}

	rounded := int(math.Round(score))
	if rounded > maxScore {
		return maxScore
	}
	if rounded < 0 {
		return 0
	}
	return rounded
}

// skillOverlap is the Jaccard index over lower-cased skill tokens.
func skillOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := skillSet(a)
	setB := skillSet(b)

	shared := 0
	for token := range setB {
		if setA[token] {
			shared++
		}
	}

	union := len(setA) + len(setB) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

func skillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		token := strings.ToLower(strings.TrimSpace(s))
		if token != "" {
			set[token] = true
		}
	}
	return set
}
