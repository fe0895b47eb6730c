package services

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"github.com/srgjo27/event_booking/internal/core/domain"
)

func DefaultCatalog() []domain.Item {
	d := decimal.NewFromInt
	return []domain.Item{
		domain.Hall{Name: "Grand Ballroom", Capacity: 500, PricePerDay: d(5000), Available: true, Image: "🏛️"},
		domain.Hall{Name: "Garden Pavilion", Capacity: 200, PricePerDay: d(3000), Available: true, Image: "🌿"},
		domain.Hall{Name: "Rooftop Terrace", Capacity: 150, PricePerDay: d(2500), Available: true, Image: "🌆"},
		domain.Hall{Name: "Conference Hall", Capacity: 100, PricePerDay: d(2000), Available: true, Image: "🏢"},

		domain.Decoration{Name: "Classic Elegance", Price: d(1500), Description: "Floral centerpieces, draping, elegant lighting", Image: "💐"},
		domain.Decoration{Name: "Modern Minimalist", Price: d(1200), Description: "Clean lines, geometric accents, ambient lighting", Image: "✨"},
		domain.Decoration{Name: "Rustic Charm", Price: d(1800), Description: "Wooden elements, fairy lights, natural decor", Image: "🌾"},
		domain.Decoration{Name: "Luxury Premium", Price: d(3000), Description: "Crystal chandeliers, premium fabrics, custom installations", Image: "💎"},

		domain.Catering{Name: "Continental Buffet", PricePerPerson: d(45), Description: "International cuisine, 5-course meal", Image: "🍽️"},
		domain.Catering{Name: "Indian Vegetarian", PricePerPerson: d(35), Description: "Traditional vegetarian spread", Image: "🥘"},
		domain.Catering{Name: "BBQ & Grill", PricePerPerson: d(55), Description: "Live grilling station, premium meats", Image: "🍖"},
		domain.Catering{Name: "Cocktail & Canapés", PricePerPerson: d(40), Description: "Finger foods and beverages", Image: "🍸"},

		domain.RoomType{Type: "Deluxe Room", PricePerNight: d(150), Available: 20, Image: "🛏️"},
		domain.RoomType{Type: "Suite", PricePerNight: d(300), Available: 10, Image: "🏨"},
		domain.RoomType{Type: "Presidential Suite", PricePerNight: d(500), Available: 3, Image: "👑"},
	}
}

// SeedDefaults fills every empty catalog table with the default records.
func (s *CatalogService) SeedDefaults(ctx context.Context) error {
	empty := map[domain.Kind]bool{}
	for _, kind := range domain.Kinds() {
		items, err := s.repo.List(ctx, kind)
		if err != nil {
			return err
		}
		empty[kind] = len(items) == 0
	}

	seeded := 0
	for _, item := range DefaultCatalog() {
		if !empty[item.Kind()] {
			continue
		}
		if _, err := s.Save(ctx, item); err != nil {
			return err
		}
		seeded++
	}

	log.Printf("Catalog seeded with %d default items", seeded)
	return nil
}
