package repository

import (
	"context"
	"database/sql"

	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
)

type CreatureRepository struct {
	db *sql.DB
}

func NewCreatureRepository(db *sql.DB) *CreatureRepository {
	return &CreatureRepository{db}
}

const creatureColumns = `c.id, c.name, c.scientific_name, c.category_id, c.description, c.habitat,
	c.diet, c.lifespan, c.conservation_status, c.image_url, c.fun_facts, c.created_at, cat.name`

func scanCreature(row interface{ Scan(...any) error }) (*entity.Creature, error) {
	var c entity.Creature
	err := row.Scan(&c.ID, &c.Name, &c.ScientificName, &c.CategoryID, &c.Description, &c.Habitat,
		&c.Diet, &c.Lifespan, &c.ConservationStatus, &c.ImageURL, &c.FunFacts, &c.CreatedAt, &c.CategoryName)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CreatureRepository) GetAllCategories(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		var cat entity.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description); err != nil {
			return nil, err
		}
		categories = append(categories, &cat)
	}

	return categories, rows.Err()
}

func (r *CreatureRepository) GetCategoryByID(ctx context.Context, id int) (*entity.Category, error) {
	var cat entity.Category
	query := `SELECT id, name, description FROM categories WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&cat.ID, &cat.Name, &cat.Description)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CreatureRepository) GetCategoryByName(ctx context.Context, name string) (*entity.Category, error) {
	var cat entity.Category
	query := `SELECT id, name, description FROM categories WHERE name = ?`
	err := r.db.QueryRowContext(ctx, query, name).Scan(&cat.ID, &cat.Name, &cat.Description)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CreatureRepository) CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO categories (name, description) VALUES (?, ?)`,
		category.Name, category.Description)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	category.ID = int(id)
	return category, nil
}

// GetAllCreatures lists every creature, or only one category's when
// categoryID is non-zero. Category name is joined in.
func (r *CreatureRepository) GetAllCreatures(ctx context.Context, categoryID int) ([]*entity.Creature, error) {
	query := `
		SELECT ` + creatureColumns + `
		FROM creatures c
		JOIN categories cat ON c.category_id = cat.id`
	args := []any{}
	if categoryID != 0 {
		query += ` WHERE c.category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY c.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creatures []*entity.Creature
	for rows.Next() {
		c, err := scanCreature(rows)
		if err != nil {
			return nil, err
		}
		creatures = append(creatures, c)
	}

	return creatures, rows.Err()
}

func (r *CreatureRepository) GetCreatureByID(ctx context.Context, id int) (*entity.Creature, error) {
	query := `
		SELECT ` + creatureColumns + `
		FROM creatures c
		JOIN categories cat ON c.category_id = cat.id
		WHERE c.id = ?`
	return scanCreature(r.db.QueryRowContext(ctx, query, id))
}

func (r *CreatureRepository) SearchCreatures(ctx context.Context, search string) ([]*entity.Creature, error) {
	pattern := "%" + search + "%"
	query := `
		SELECT ` + creatureColumns + `
		FROM creatures c
		JOIN categories cat ON c.category_id = cat.id
		WHERE c.name LIKE ? OR c.description LIKE ? OR c.scientific_name LIKE ?
		ORDER BY c.name`
	rows, err := r.db.QueryContext(ctx, query, pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creatures []*entity.Creature
	for rows.Next() {
		c, err := scanCreature(rows)
		if err != nil {
			return nil, err
		}
		creatures = append(creatures, c)
	}

	return creatures, rows.Err()
}

func (r *CreatureRepository) GetCreaturesByCategory(ctx context.Context, categoryID, limit, offset int) ([]*entity.Creature, int, error) {
	query := `
		SELECT ` + creatureColumns + `
		FROM creatures c
		JOIN categories cat ON c.category_id = cat.id
		WHERE c.category_id = ?
		ORDER BY c.name
		LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, categoryID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var creatures []*entity.Creature
	for rows.Next() {
		c, err := scanCreature(rows)
		if err != nil {
			return nil, 0, err
		}
		creatures = append(creatures, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM creatures WHERE category_id = ?`, categoryID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	return creatures, total, nil
}

func (r *CreatureRepository) CreateCreature(ctx context.Context, c *entity.Creature) (*entity.Creature, error) {
	query := `
		INSERT INTO creatures (name, scientific_name, category_id, description, habitat, diet,
			lifespan, conservation_status, image_url, fun_facts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.ScientificName, c.CategoryID, c.Description,
		c.Habitat, c.Diet, c.Lifespan, c.ConservationStatus, c.ImageURL, c.FunFacts)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	c.ID = int(id)
	return c, nil
}

func (r *CreatureRepository) UpdateCreature(ctx context.Context, c *entity.Creature) (*entity.Creature, error) {
	query := `
		UPDATE creatures SET name = ?, scientific_name = ?, category_id = ?, description = ?,
			habitat = ?, diet = ?, lifespan = ?, conservation_status = ?, image_url = ?, fun_facts = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.ScientificName, c.CategoryID, c.Description,
		c.Habitat, c.Diet, c.Lifespan, c.ConservationStatus, c.ImageURL, c.FunFacts, c.ID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CreatureRepository) UpdateImageURL(ctx context.Context, id int, imageURL string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE creatures SET image_url = ? WHERE id = ?`, imageURL, id)
	return err
}

// DeleteCreature removes a creature and its feedback. Deleting an id
// that is already gone affects zero rows and is not an error.
func (r *CreatureRepository) DeleteCreature(ctx context.Context, id int) (int64, error) {
	_, err := r.db.ExecContext(ctx, `DELETE FROM feedback WHERE creature_id = ?`, id)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM creatures WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *CreatureRepository) CountCreatures(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM creatures`).Scan(&count)
	return count, err
}

func (r *CreatureRepository) CountCategories(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count)
	return count, err
}

// CreatureSummary is the catalog listing fed into the chat prompt.
type CreatureSummary struct {
	Name        string
	Category    string
	Description string
}

func (r *CreatureRepository) GetCreatureSummaries(ctx context.Context) ([]CreatureSummary, error) {
	query := `
		SELECT c.name, cat.name, c.description
		FROM creatures c
		JOIN categories cat ON c.category_id = cat.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []CreatureSummary
	for rows.Next() {
		var s CreatureSummary
		if err := rows.Scan(&s.Name, &s.Category, &s.Description); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}
