package main

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/BinLe1988/heartlink/configs"
	"github.com/BinLe1988/heartlink/database"
	"github.com/BinLe1988/heartlink/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// 演示数据：兴趣标签
var interestNames = []string{
	"Travel", "Cooking", "Photography", "Music", "Sports", "Reading",
	"Dancing", "Hiking", "Technology", "Coffee", "Art", "Fashion",
	"Movies", "Gaming", "Yoga", "Meditation", "Languages", "Business",
	"Science", "History", "Nature", "Food", "Wine", "Fitness",
}

// 演示数据：社区板块
var categories = []models.CommunityCategory{
	{Name: "Dating Tips", Color: "#e91e63"},
	{Name: "Success Stories", Color: "#4caf50"},
	{Name: "Culture Exchange", Color: "#2196f3"},
	{Name: "General", Color: "#9e9e9e"},
}

type seedUser struct {
	Email      string
	Name       string
	Age        int
	Gender     models.Gender
	Country    string
	City       string
	Bio        string
	LookingFor models.LookingFor
	Verified   bool
	Premium    bool
	Interests  []string
}

var seedUsers = []seedUser{
	{
		Email: "john@example.com", Name: "John Doe", Age: 28,
		Gender: models.GenderMale, Country: "USA", City: "New York",
		Bio:        "Looking for a meaningful connection with someone special.",
		LookingFor: models.LookingForSerious, Verified: true, Premium: true,
		Interests: []string{"Travel", "Music", "Sports", "Technology"},
	},
	{
		Email: "sakura@example.com", Name: "Sakura Tanaka", Age: 25,
		Gender: models.GenderFemale, Country: "Japan", City: "Tokyo",
		Bio:        "Loves traveling, cooking, and learning new cultures. Looking for a serious relationship.",
		LookingFor: models.LookingForSerious, Verified: true, Premium: true,
		Interests: []string{"Travel", "Cooking", "Photography", "Languages"},
	},
	{
		Email: "mai@example.com", Name: "Mai Srisai", Age: 23,
		Gender: models.GenderFemale, Country: "Thailand", City: "Bangkok",
		Bio:        "University student studying international business. Enjoys music and outdoor activities.",
		LookingFor: models.LookingForSerious, Verified: true, Premium: false,
		Interests: []string{"Music", "Business", "Dancing"},
	},
	{
		Email: "linh@example.com", Name: "Linh Nguyen", Age: 26,
		Gender: models.GenderFemale, Country: "Vietnam", City: "Ho Chi Minh City",
		Bio:        "Software engineer who loves reading and hiking. Seeking someone who shares similar values.",
		LookingFor: models.LookingForSerious, Verified: true, Premium: true,
		Interests: []string{"Reading", "Hiking", "Technology", "Coffee"},
	},
	{
		Email: "michael@example.com", Name: "Michael Smith", Age: 30,
		Gender: models.GenderMale, Country: "Australia", City: "Sydney",
		Bio:        "Adventure seeker and coffee enthusiast. Looking for someone to share life's journey with.",
		LookingFor: models.LookingForSerious, Verified: true, Premium: true,
		Interests: []string{"Travel", "Coffee", "Hiking", "Photography"},
	},
	{
		Email: "yuki@example.com", Name: "Yuki Yamamoto", Age: 24,
		Gender: models.GenderFemale, Country: "Japan", City: "Osaka",
		Bio:        "Art lover and foodie. Enjoys exploring new restaurants and museums.",
		LookingFor: models.LookingForCasual, Verified: true, Premium: false,
		Interests: []string{"Art", "Food", "Travel", "Fashion"},
	},
}

func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := database.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	db := database.DB

	// 兴趣标签
	log.Println("Seeding interests...")
	interestByName := make(map[string]models.Interest)
	for _, name := range interestNames {
		interest := models.Interest{Name: name, Category: "General"}
		db.Where(models.Interest{Name: name}).FirstOrCreate(&interest)
		interestByName[name] = interest
	}

	// 社区板块
	log.Println("Seeding community categories...")
	for i := range categories {
		db.Where(models.CommunityCategory{Name: categories[i].Name}).FirstOrCreate(&categories[i])
	}

	// 演示用户
	log.Println("Seeding demo users...")
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	for _, su := range seedUsers {
		var count int64
		db.Model(&models.User{}).Where("email = ?", su.Email).Count(&count)
		if count > 0 {
			continue
		}

		now := time.Now()
		user := models.User{
			Email:      su.Email,
			Password:   string(hashed),
			Name:       su.Name,
			Age:        su.Age,
			Gender:     su.Gender,
			Country:    su.Country,
			City:       su.City,
			Bio:        su.Bio,
			LookingFor: su.LookingFor,
			Verified:   su.Verified,
			Premium:    su.Premium,
			Active:     true,
			LastSeen:   &now,
		}
		for _, name := range su.Interests {
			if interest, ok := interestByName[name]; ok {
				user.Interests = append(user.Interests, interest)
			}
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Email, err)
		}

		// 资料照片
		photos := []models.Photo{
			{UserID: user.ID, URL: fmt.Sprintf("https://cdn.heartlink.app/photos/%s.jpg", uuid.New().String()), Order: 0, IsPrimary: true},
			{UserID: user.ID, URL: fmt.Sprintf("https://cdn.heartlink.app/photos/%s.jpg", uuid.New().String()), Order: 1},
		}
		if err := db.Create(&photos).Error; err != nil {
			log.Fatalf("Failed to create photos for %s: %v", su.Email, err)
		}

		// 默认偏好
		countries, _ := json.Marshal([]string{"Japan", "Thailand", "Vietnam", "USA", "Australia"})
		interests, _ := json.Marshal(su.Interests)
		prefs := models.UserPreferences{
			UserID:     user.ID,
			AgeMin:     20,
			AgeMax:     35,
			Distance:   100,
			Countries:  string(countries),
			Interests:  string(interests),
			LookingFor: su.LookingFor,
		}
		if err := db.Create(&prefs).Error; err != nil {
			log.Fatalf("Failed to create preferences for %s: %v", su.Email, err)
		}
	}

	// 管理员账号
	log.Println("Seeding admin account...")
	var adminCount int64
	db.Model(&models.User{}).Where("email = ?", "admin@heartlink.app").Count(&adminCount)
	if adminCount == 0 {
		now := time.Now()
		admin := models.User{
			Email:    "admin@heartlink.app",
			Password: string(hashed),
			Name:     "Administrator",
			Age:      30,
			Gender:   models.GenderOther,
			Country:  "USA",
			City:     "New York",
			Role:     models.RoleAdmin,
			Verified: true,
			Active:   true,
			LastSeen: &now,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
	}

	log.Println("Seeding completed")
}
