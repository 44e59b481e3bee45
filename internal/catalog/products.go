package catalog

import "storefront/internal/models"

const unsplashParams = "?q=80&w=2070&auto=format&fit=crop"

var demoProducts = []models.Product{
	{
		ID:          "1",
		Name:        "Classic Round Glasses",
		Description: "Timeless design for everyday elegance.",
		Price:       129.99,
		Image:       "https://images.unsplash.com/photo-1574854894785-c64dc99f7599" + unsplashParams,
		Rating:      4.5,
		Reviews:     42,
		Category:    "Eyewear",
	},
	{
		ID:          "2",
		Name:        "Modern Square Frames",
		Description: "Bold and contemporary for a sharp look.",
		Price:       149.50,
		Image:       "https://images.unsplash.com/photo-1616499494472-68549c3991ca" + unsplashParams,
		Rating:      4.2,
		Reviews:     35,
		Category:    "Eyewear",
	},
	{
		ID:          "3",
		Name:        "Vintage Aviator Style",
		Description: "A classic design with a modern twist.",
		Price:       135.00,
		Image:       "https://images.unsplash.com/photo-1534438327276-14e530d3cae6" + unsplashParams,
		Rating:      4.7,
		Reviews:     50,
		Category:    "Eyewear",
	},
	{
		ID:          "4",
		Name:        "Sleek Rectangular Glasses",
		Description: "Understated elegance for a professional appearance.",
		Price:       119.00,
		Image:       "https://images.unsplash.com/photo-1585314064435-9392c0146924" + unsplashParams,
		Rating:      4.0,
		Reviews:     28,
		Category:    "Eyewear",
	},
	{
		ID:          "5",
		Name:        "Chic Cat-Eye Frames",
		Description: "Add a touch of glamour to your look.",
		Price:       155.00,
		Image:       "https://images.unsplash.com/photo-1621905249798-88756495c103" + unsplashParams,
		Rating:      4.3,
		Reviews:     38,
		Category:    "Eyewear",
	},
	{
		ID:          "6",
		Name:        "Rimless Minimalist Design",
		Description: "Barely-there frames for ultimate comfort.",
		Price:       169.00,
		Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30" + unsplashParams,
		Rating:      4.6,
		Reviews:     45,
		Category:    "Electronics",
	},
	{
		ID:          "7",
		Name:        "Sporty Active Glasses",
		Description: "Durable and lightweight for active lifestyles.",
		Price:       110.00,
		Image:       "https://images.unsplash.com/photo-1541736344-01f189194f13" + unsplashParams,
		Rating:      3.9,
		Reviews:     25,
		Category:    "Sports",
	},
	{
		ID:          "8",
		Name:        "Luxury Gold-Trimmed Frames",
		Description: "Exquisite craftsmanship for a luxurious feel.",
		Price:       199.00,
		Image:       "https://images.unsplash.com/photo-1585314064435-9392c0146924" + unsplashParams,
		Rating:      4.8,
		Reviews:     52,
		Category:    "Luxury",
	},
}
