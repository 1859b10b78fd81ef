package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Lil-Chen05/TheBench/internal/models"

	"github.com/jackc/pgx/v5"
)

// TeamRepository reads basketball teams. Teams are maintained outside the importer.
type TeamRepository struct {
	db *Database
}

// List retrieves all teams in id order
func (r *TeamRepository) List(ctx context.Context) (teams []*models.Team, err error) {
	start := time.Now()
	defer func() { observe("select", "basketballteams", start, err) }()

	query := `
		SELECT id, abbr, team_name
		FROM basketballteams
		ORDER BY id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Abbr, &team.TeamName); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, &team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	return teams, nil
}

// GetByAbbr retrieves a team by its abbreviation
func (r *TeamRepository) GetByAbbr(ctx context.Context, abbr string) (*models.Team, error) {
	query := `
		SELECT id, abbr, team_name
		FROM basketballteams
		WHERE abbr = $1
	`

	var team models.Team
	err := r.db.Pool.QueryRow(ctx, query, abbr).Scan(&team.ID, &team.Abbr, &team.TeamName)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("team not found: abbr=%s", abbr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return &team, nil
}
