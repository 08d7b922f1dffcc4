// Package seed holds the sample catalog used by the admin seeding
// endpoints.
package seed

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
	"github.com/shaktiaryan/wildlife-gallery/internal/repository"
)

var SampleCategories = []entity.Category{
	{Name: "Animals", Description: "Mammals and other land animals"},
	{Name: "Birds", Description: "Flying and flightless birds"},
}

type sampleCreature struct {
	entity.Creature
	Category string
}

var sampleCreatures = []sampleCreature{
	{Category: "Animals", Creature: entity.Creature{Name: "African Lion", ScientificName: "Panthera leo", Description: "The African lion is one of the most iconic animals in the world.", Habitat: "African savannas", Diet: "Carnivore", Lifespan: "10-14 years", ConservationStatus: "Vulnerable", ImageURL: "https://images.unsplash.com/photo-1546182990-dffeafbe841d?w=800", FunFacts: "A lion's roar can be heard from 5 miles away!"}},
	{Category: "Animals", Creature: entity.Creature{Name: "African Elephant", ScientificName: "Loxodonta africana", Description: "The largest land animal on Earth.", Habitat: "Sub-Saharan Africa", Diet: "Herbivore", Lifespan: "60-70 years", ConservationStatus: "Vulnerable", ImageURL: "https://images.unsplash.com/photo-1557050543-4d5f4e07ef46?w=800", FunFacts: "Elephants can't jump!"}},
	{Category: "Animals", Creature: entity.Creature{Name: "Giant Panda", ScientificName: "Ailuropoda melanoleuca", Description: "A beloved bear native to China.", Habitat: "Mountain forests of China", Diet: "Herbivore - bamboo", Lifespan: "20 years", ConservationStatus: "Vulnerable", ImageURL: "https://images.unsplash.com/photo-1564349683136-77e08dba1ef7?w=800", FunFacts: "Pandas spend 12 hours a day eating!"}},
	{Category: "Animals", Creature: entity.Creature{Name: "Bengal Tiger", ScientificName: "Panthera tigris tigris", Description: "The most numerous tiger subspecies.", Habitat: "Indian forests", Diet: "Carnivore", Lifespan: "10-15 years", ConservationStatus: "Endangered", ImageURL: "https://images.unsplash.com/photo-1561731216-c3a4d99437d5?w=800", FunFacts: "No two tigers have the same stripes!"}},
	{Category: "Animals", Creature: entity.Creature{Name: "Red Fox", ScientificName: "Vulpes vulpes", Description: "The largest of the true foxes.", Habitat: "Worldwide", Diet: "Omnivore", Lifespan: "2-5 years", ConservationStatus: "Least Concern", ImageURL: "https://images.unsplash.com/photo-1474511320723-9a56873571b7?w=800", FunFacts: "Foxes can hear mice underground!"}},
	{Category: "Animals", Creature: entity.Creature{Name: "Gray Wolf", ScientificName: "Canis lupus", Description: "The largest wild dog family member.", Habitat: "Northern Hemisphere", Diet: "Carnivore", Lifespan: "6-8 years", ConservationStatus: "Least Concern", ImageURL: "https://images.unsplash.com/photo-1546182990-dffeafbe841d?w=800", FunFacts: "Wolves can run 40 mph!"}},
	{Category: "Birds", Creature: entity.Creature{Name: "Bald Eagle", ScientificName: "Haliaeetus leucocephalus", Description: "The national bird of the United States.", Habitat: "North America", Diet: "Carnivore - fish", Lifespan: "20-30 years", ConservationStatus: "Least Concern", ImageURL: "https://images.unsplash.com/photo-1611689342806-0863700ce1e4?w=800", FunFacts: "Eagles can see fish from a mile away!"}},
	{Category: "Birds", Creature: entity.Creature{Name: "Peacock", ScientificName: "Pavo cristatus", Description: "Famous for stunning tail feathers.", Habitat: "South Asia", Diet: "Omnivore", Lifespan: "15-20 years", ConservationStatus: "Least Concern", ImageURL: "https://images.unsplash.com/photo-1456926631375-92c8ce872def?w=800", FunFacts: "Tail feathers reach 6 feet long!"}},
	{Category: "Birds", Creature: entity.Creature{Name: "Atlantic Puffin", ScientificName: "Fratercula arctica", Description: "Colorful seabird of the North Atlantic.", Habitat: "North Atlantic", Diet: "Carnivore - fish", Lifespan: "20-30 years", ConservationStatus: "Vulnerable", ImageURL: "https://images.unsplash.com/photo-1591608971362-f08b2a75731a?w=800", FunFacts: "Puffins carry 12 fish at once!"}},
	{Category: "Birds", Creature: entity.Creature{Name: "Snowy Owl", ScientificName: "Bubo scandiacus", Description: "Large white Arctic owl.", Habitat: "Arctic tundra", Diet: "Carnivore", Lifespan: "10 years", ConservationStatus: "Vulnerable", ImageURL: "https://images.unsplash.com/photo-1579019163248-e7761241d85a?w=800", FunFacts: "Snowy owls hunt during the day!"}},
	{Category: "Birds", Creature: entity.Creature{Name: "Hummingbird", ScientificName: "Trochilidae", Description: "The smallest birds in the world.", Habitat: "Americas", Diet: "Omnivore - nectar", Lifespan: "3-5 years", ConservationStatus: "Varies", ImageURL: "https://images.unsplash.com/photo-1520808663317-647b476a81b9?w=800", FunFacts: "Wings beat 80 times per second!"}},
	{Category: "Birds", Creature: entity.Creature{Name: "Flamingo", ScientificName: "Phoenicopterus", Description: "Famous for pink feathers.", Habitat: "Worldwide lagoons", Diet: "Omnivore", Lifespan: "20-30 years", ConservationStatus: "Least Concern", ImageURL: "https://images.unsplash.com/photo-1497206365907-f5e630693df0?w=800", FunFacts: "Born gray, turn pink over time!"}},
}

// Seeder populates the catalog with the sample data set.
type Seeder struct {
	db           *sql.DB
	creatureRepo *repository.CreatureRepository
}

func NewSeeder(db *sql.DB, creatureRepo *repository.CreatureRepository) *Seeder {
	return &Seeder{db: db, creatureRepo: creatureRepo}
}

// Reset wipes feedback, creatures and categories, then inserts the
// sample data. Returns category and creature counts inserted.
func (s *Seeder) Reset(ctx context.Context) (int, int, error) {
	for _, table := range []string{"feedback", "images", "creatures", "categories"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return 0, 0, err
		}
	}

	categoryIDs := make(map[string]int)
	for _, cat := range SampleCategories {
		c := cat
		created, err := s.creatureRepo.CreateCategory(ctx, &c)
		if err != nil {
			return 0, 0, err
		}
		categoryIDs[created.Name] = created.ID
	}

	added := 0
	for _, sample := range sampleCreatures {
		c := sample.Creature
		c.CategoryID = categoryIDs[sample.Category]
		if _, err := s.creatureRepo.CreateCreature(ctx, &c); err != nil {
			return len(categoryIDs), added, err
		}
		added++
	}

	return len(categoryIDs), added, nil
}

// Add inserts only the sample rows that are missing, leaving existing
// data alone. Returns how many categories and creatures were added.
func (s *Seeder) Add(ctx context.Context) (int, int, error) {
	addedCategories := 0
	categoryIDs := make(map[string]int)

	for _, cat := range SampleCategories {
		existing, err := s.creatureRepo.GetCategoryByName(ctx, cat.Name)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return 0, 0, err
			}
			c := cat
			created, err := s.creatureRepo.CreateCategory(ctx, &c)
			if err != nil {
				return 0, 0, err
			}
			categoryIDs[created.Name] = created.ID
			addedCategories++
			continue
		}
		categoryIDs[existing.Name] = existing.ID
	}

	addedCreatures := 0
	for _, sample := range sampleCreatures {
		var id int
		err := s.db.QueryRowContext(ctx, `SELECT id FROM creatures WHERE name = ?`, sample.Name).Scan(&id)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return addedCategories, addedCreatures, err
		}

		c := sample.Creature
		c.CategoryID = categoryIDs[sample.Category]
		if c.CategoryID == 0 {
			continue
		}
		if _, err := s.creatureRepo.CreateCreature(ctx, &c); err != nil {
			return addedCategories, addedCreatures, err
		}
		addedCreatures++
	}

	return addedCategories, addedCreatures, nil
}
