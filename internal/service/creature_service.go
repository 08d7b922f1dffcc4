package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
	"github.com/shaktiaryan/wildlife-gallery/internal/repository"
)

const defaultPageSize = 12

type CreatureService struct {
	creatureRepo *repository.CreatureRepository
}

func NewCreatureService(creatureRepo *repository.CreatureRepository) *CreatureService {
	return &CreatureService{creatureRepo: creatureRepo}
}

func (s *CreatureService) GetAllCategories(ctx context.Context) ([]*entity.Category, error) {
	return s.creatureRepo.GetAllCategories(ctx)
}

func (s *CreatureService) GetCategoryByID(ctx context.Context, id int) (*entity.Category, error) {
	cat, err := s.creatureRepo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return cat, nil
}

func (s *CreatureService) CreateCategory(ctx context.Context, name, description string) (*entity.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", ErrValidation)
	}
	cat, err := s.creatureRepo.CreateCategory(ctx, &entity.Category{Name: name, Description: description})
	if err != nil {
		logger.Error().Err(err).Msgf("Error creating category %q", name)
		return nil, err
	}
	return cat, nil
}

// GetAllCreatures lists the catalog, optionally restricted to one
// category (categoryID 0 means no filter).
func (s *CreatureService) GetAllCreatures(ctx context.Context, categoryID int) ([]*entity.Creature, error) {
	return s.creatureRepo.GetAllCreatures(ctx, categoryID)
}

func (s *CreatureService) GetCreatureByID(ctx context.Context, id int) (*entity.Creature, error) {
	creature, err := s.creatureRepo.GetCreatureByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("creature %d: %w", id, ErrNotFound)
		}
		logger.Error().Err(err).Msgf("Error getting creature by ID %d", id)
		return nil, err
	}
	return creature, nil
}

func (s *CreatureService) SearchCreatures(ctx context.Context, query string) ([]*entity.Creature, error) {
	return s.creatureRepo.SearchCreatures(ctx, query)
}

func (s *CreatureService) GetCreaturesByCategory(ctx context.Context, categoryID, page, limit int) (*entity.CreaturePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}

	creatures, total, err := s.creatureRepo.GetCreaturesByCategory(ctx, categoryID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	pages := total / limit
	if total%limit != 0 {
		pages++
	}

	return &entity.CreaturePage{Creatures: creatures, Total: total, Pages: pages}, nil
}

func (s *CreatureService) CreateCreature(ctx context.Context, c *entity.Creature) (*entity.Creature, error) {
	if c.Name == "" || c.CategoryID == 0 {
		return nil, fmt.Errorf("name and category are required: %w", ErrValidation)
	}

	created, err := s.creatureRepo.CreateCreature(ctx, c)
	if err != nil {
		logger.Error().Err(err).Msgf("Error creating creature %q", c.Name)
		return nil, err
	}
	return created, nil
}

func (s *CreatureService) UpdateCreature(ctx context.Context, c *entity.Creature) (*entity.Creature, error) {
	if c.Name == "" || c.CategoryID == 0 {
		return nil, fmt.Errorf("name and category are required: %w", ErrValidation)
	}

	updated, err := s.creatureRepo.UpdateCreature(ctx, c)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating creature %d", c.ID)
		return nil, err
	}
	return updated, nil
}

// DeleteCreature removes a creature and, through the schema cascades
// and the explicit feedback delete, its feedback and image. Deleting an
// id that no longer exists is a no-op, not an error.
func (s *CreatureService) DeleteCreature(ctx context.Context, id int) error {
	_, err := s.creatureRepo.DeleteCreature(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting creature %d", id)
	}
	return err
}

func (s *CreatureService) CreatureCount(ctx context.Context) (int, error) {
	return s.creatureRepo.CountCreatures(ctx)
}

func (s *CreatureService) CategoryCount(ctx context.Context) (int, error) {
	return s.creatureRepo.CountCategories(ctx)
}
