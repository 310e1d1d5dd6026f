package catalog

import "time"

func date(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

func datePtr(value string) *time.Time {
	t := date(value)
	return &t
}

// DemoItems returns the sample listings shown when the service starts with
// seeding enabled.
func DemoItems() []Item {
	return []Item{
		{
			ID:          "1",
			Title:       "Vintage Denim Jacket",
			Description: "Classic blue denim jacket in excellent condition. Perfect for casual wear.",
			Category:    "Outerwear",
			Type:        "Jacket",
			Size:        "M",
			Condition:   "Excellent",
			Tags:        []string{"vintage", "denim", "casual"},
			Images: []string{
				"https://images.pexels.com/photos/934070/pexels-photo-934070.jpeg",
				"https://images.pexels.com/photos/1656684/pexels-photo-1656684.jpeg",
			},
			UploaderID:   "u1",
			UploaderName: "Sarah Johnson",
			Status:       ItemStatusAvailable,
			Points:       75,
			CreatedAt:    date("2024-01-15"),
			ApprovedAt:   datePtr("2024-01-16"),
		},
		{
			ID:          "2",
			Title:       "Floral Summer Dress",
			Description: "Beautiful floral print dress, perfect for summer occasions.",
			Category:    "Dresses",
			Type:        "Casual Dress",
			Size:        "S",
			Condition:   "Good",
			Tags:        []string{"floral", "summer", "casual"},
			Images: []string{
				"https://images.pexels.com/photos/985635/pexels-photo-985635.jpeg",
				"https://images.pexels.com/photos/994517/pexels-photo-994517.jpeg",
			},
			UploaderID:   "u2",
			UploaderName: "Emma Davis",
			Status:       ItemStatusAvailable,
			Points:       60,
			CreatedAt:    date("2024-01-20"),
			ApprovedAt:   datePtr("2024-01-21"),
		},
		{
			ID:          "3",
			Title:       "Leather Boots",
			Description: "Genuine leather boots, worn only a few times.",
			Category:    "Shoes",
			Type:        "Boots",
			Size:        "9",
			Condition:   "Like New",
			Tags:        []string{"leather", "boots", "formal"},
			Images: []string{
				"https://images.pexels.com/photos/1464625/pexels-photo-1464625.jpeg",
			},
			UploaderID:   "admin1",
			UploaderName: "Admin User",
			Status:       ItemStatusAvailable,
			Points:       90,
			CreatedAt:    date("2024-01-25"),
			ApprovedAt:   datePtr("2024-01-26"),
		},
	}
}

// SeedDemo loads the sample listings into the store.
func (s *Store) SeedDemo() {
	s.Load(DemoItems(), nil)
}
