package service

import (
	"math"
	"strings"
	"time"

	"github.com/pawnest/pawsearch/internal/domain"
)

// Field-match weights and boosts. Scores are additive and not normalized
// across source types; see rank.go for how combined results are ordered.
const (
	titleWeight          = 3.0
	contentWeight        = 1.0
	tagWeight            = 2.0
	nameWeight           = 3.0
	bioWeight            = 1.0
	locationWeight       = 2.0
	specializationWeight = 2.0
	notesWeight          = 2.0

	urgentBoost        = 1.0
	verifiedBoost      = 1.0
	upvoteBoostFactor  = 0.5
	viewBoostFactor    = 0.2
	ratingBoostFactor  = 0.5
	reviewBoostFactor  = 0.3
	recencyWindowDays  = 30.0
	recencyBoostFactor = 0.1
)

// scoreQuestion scores a question against the extracted terms. Each term
// contributes independently per field, so a term matching in both title and
// content counts both weights.
func scoreQuestion(q *domain.Question, terms []string) float64 {
	title := strings.ToLower(q.Title)
	content := strings.ToLower(q.Content)

	var score float64
	for _, term := range terms {
		if strings.Contains(title, term) {
			score += titleWeight
		}
		if strings.Contains(content, term) {
			score += contentWeight
		}
		for _, tag := range q.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				score += tagWeight
				break
			}
		}
	}

	score += math.Log(float64(q.Upvotes)+1)*upvoteBoostFactor +
		math.Log(float64(q.Views)+1)*viewBoostFactor
	if q.IsUrgent {
		score += urgentBoost
	}
	return score
}

// scorePartner scores a partner against the extracted terms.
func scorePartner(p *domain.Partner, terms []string) float64 {
	name := strings.ToLower(p.Name)
	business := strings.ToLower(p.BusinessName)
	bio := strings.ToLower(p.Bio)
	location := strings.ToLower(p.Location)

	var score float64
	for _, term := range terms {
		if strings.Contains(name, term) || strings.Contains(business, term) {
			score += nameWeight
		}
		if strings.Contains(bio, term) {
			score += bioWeight
		}
		if location != "" && strings.Contains(location, term) {
			score += locationWeight
		}
		for _, spec := range p.Specializations {
			if strings.Contains(strings.ToLower(spec), term) {
				score += specializationWeight
				break
			}
		}
	}

	if p.Verified {
		score += verifiedBoost
	}
	score += p.RatingAverage*ratingBoostFactor +
		math.Log(float64(p.ReviewCount)+1)*reviewBoostFactor
	return score
}

// scoreHealthLog scores a health log against the extracted terms. Freshness
// is rewarded only within the recency window; older logs get no boost.
func scoreHealthLog(h *domain.HealthLog, terms []string, now time.Time) float64 {
	notes := strings.ToLower(h.Notes)

	var score float64
	for _, term := range terms {
		if strings.Contains(notes, term) {
			score += notesWeight
		}
	}

	ageDays := now.Sub(h.Date).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	if boost := (recencyWindowDays - ageDays) * recencyBoostFactor; boost > 0 {
		score += boost
	}
	return score
}
