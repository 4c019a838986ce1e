package database

import (
	"database/sql"
	"fmt"
)

type seedCounselor struct {
	name        string
	title       string
	specialty   string
	bio         string
	avatarColor string
}

var seedCounselors = []seedCounselor{
	{
		name:        "Dr. Sarah Johnson",
		title:       "Licensed Clinical Psychologist",
		specialty:   "Anxiety & Stress Management",
		bio:         "Specializing in cognitive behavioral therapy with over 15 years of experience helping clients manage anxiety and stress.",
		avatarColor: "#4A90E2",
	},
	{
		name:        "Michael Chen",
		title:       "Career Counselor",
		specialty:   "Career Development & Planning",
		bio:         "Dedicated to helping professionals navigate career transitions and achieve their professional goals.",
		avatarColor: "#7B68EE",
	},
	{
		name:        "Dr. Emily Rodriguez",
		title:       "Family Therapist",
		specialty:   "Family & Relationship Counseling",
		bio:         "Experienced in family systems therapy and relationship counseling with a focus on communication and conflict resolution.",
		avatarColor: "#50C878",
	},
	{
		name:        "James Patterson",
		title:       "Academic Counselor",
		specialty:   "Academic Success & Study Skills",
		bio:         "Helping students develop effective study strategies and overcome academic challenges for over 10 years.",
		avatarColor: "#FF6B6B",
	},
	{
		name:        "Dr. Lisa Anderson",
		title:       "Mental Health Counselor",
		specialty:   "Depression & Life Transitions",
		bio:         "Compassionate support for individuals dealing with depression, grief, and major life changes.",
		avatarColor: "#FFA500",
	},
	{
		name:        "Robert Kim",
		title:       "Substance Abuse Counselor",
		specialty:   "Addiction & Recovery",
		bio:         "Certified addiction counselor specializing in evidence-based treatment for substance use disorders.",
		avatarColor: "#9370DB",
	},
}

// SeedCounselors inserts the counselor roster if the table is empty. It is
// safe to call on every startup.
func SeedCounselors(db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM counselors`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count counselors: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	for _, c := range seedCounselors {
		if _, err := tx.Exec(
			`INSERT INTO counselors (name, title, specialty, bio, avatar_color) VALUES (?, ?, ?, ?, ?)`,
			c.name, c.title, c.specialty, c.bio, c.avatarColor,
		); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to seed counselors: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(seedCounselors), nil
}
