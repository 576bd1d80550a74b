package models

import (
	"time"

	"gorm.io/gorm"
)

// 性别
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// 交友目的
type LookingFor string

const (
	LookingForSerious LookingFor = "SERIOUS"
	LookingForCasual  LookingFor = "CASUAL"
	LookingForFriends LookingFor = "FRIENDS"
)

// 用户角色
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User 用户模型
type User struct {
	gorm.Model
	Email      string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password   string     `gorm:"size:255;not null" json:"-"`
	Name       string     `gorm:"size:50;not null" json:"name"`
	Age        int        `gorm:"not null" json:"age"`
	Gender     Gender     `gorm:"size:10;not null" json:"gender"`
	Country    string     `gorm:"size:50;not null" json:"country"`
	City       string     `gorm:"size:50;not null" json:"city"`
	Bio        string     `gorm:"type:text" json:"bio"`
	LookingFor LookingFor `gorm:"size:20;default:'SERIOUS'" json:"lookingFor"`
	Role       Role       `gorm:"size:10;default:'user'" json:"role"`

	Verified bool `gorm:"default:false" json:"verified"`
	Active   bool `gorm:"default:true" json:"active"`
	Premium  bool `gorm:"default:false" json:"premium"`
	Banned   bool `gorm:"default:false" json:"banned"`
	Reported bool `gorm:"default:false" json:"reported"`
	Online   bool `gorm:"default:false" json:"online"`

	LastSeen *time.Time `json:"lastSeen"`
	BannedAt *time.Time `json:"bannedAt,omitempty"`

	Photos      []Photo          `gorm:"foreignKey:UserID" json:"photos,omitempty"`
	Interests   []Interest       `gorm:"many2many:user_interests;" json:"interests,omitempty"`
	Preferences *UserPreferences `gorm:"foreignKey:UserID" json:"preferences,omitempty"`
}

// Photo 用户照片，按Order字段排序展示
type Photo struct {
	gorm.Model
	UserID    uint   `gorm:"not null;index" json:"userId"`
	URL       string `gorm:"size:255;not null" json:"url"`
	Order     int    `gorm:"column:sort_order;default:0" json:"order"`
	IsPrimary bool   `gorm:"default:false" json:"isPrimary"`
}

// Interest 兴趣标签
type Interest struct {
	gorm.Model
	Name     string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Category string `gorm:"size:50;default:'General'" json:"category"`
}

// UserPreferences 用户偏好设置，每个用户一条
type UserPreferences struct {
	gorm.Model
	UserID     uint       `gorm:"not null;uniqueIndex" json:"userId"`
	AgeMin     int        `gorm:"default:18" json:"ageMin"`
	AgeMax     int        `gorm:"default:50" json:"ageMax"`
	Distance   int        `gorm:"default:50" json:"distance"`
	Countries  string     `gorm:"type:text" json:"countries"` // JSON数组
	Interests  string     `gorm:"type:text" json:"interests"` // JSON数组
	LookingFor LookingFor `gorm:"size:20;default:'SERIOUS'" json:"lookingFor"`
}

// RegistrationRequest 用户注册请求
type RegistrationRequest struct {
	Email      string     `json:"email" binding:"required,email"`
	Password   string     `json:"password" binding:"required,min=8"`
	Name       string     `json:"name" binding:"required,min=2,max=50"`
	Age        int        `json:"age" binding:"required,gte=18,lte=120"`
	Gender     Gender     `json:"gender" binding:"required,oneof=MALE FEMALE OTHER"`
	Country    string     `json:"country" binding:"required"`
	City       string     `json:"city" binding:"required"`
	Bio        string     `json:"bio"`
	LookingFor LookingFor `json:"lookingFor"`
	Interests  []string   `json:"interests"`
}

// CredentialRequest 用户登录请求
type CredentialRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PreferencesRequest 偏好更新请求
type PreferencesRequest struct {
	AgeMin     int        `json:"ageMin" binding:"gte=18"`
	AgeMax     int        `json:"ageMax" binding:"lte=120"`
	Distance   int        `json:"distance"`
	Countries  []string   `json:"countries"`
	Interests  []string   `json:"interests"`
	LookingFor LookingFor `json:"lookingFor"`
}

// UserResponse 用户响应，不包含密码
type UserResponse struct {
	ID         uint       `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Age        int        `json:"age"`
	Gender     Gender     `json:"gender"`
	Country    string     `json:"country"`
	City       string     `json:"city"`
	Bio        string     `json:"bio"`
	LookingFor LookingFor `json:"lookingFor"`
	Verified   bool       `json:"verified"`
	Premium    bool       `json:"premium"`
	Online     bool       `json:"online"`
	LastSeen   *time.Time `json:"lastSeen"`
	Photos     []Photo    `json:"photos"`
	Interests  []Interest `json:"interests"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ToResponse 转换为响应
func (u *User) ToResponse() UserResponse {
	photos := u.Photos
	if photos == nil {
		photos = []Photo{}
	}
	interests := u.Interests
	if interests == nil {
		interests = []Interest{}
	}

	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Age:        u.Age,
		Gender:     u.Gender,
		Country:    u.Country,
		City:       u.City,
		Bio:        u.Bio,
		LookingFor: u.LookingFor,
		Verified:   u.Verified,
		Premium:    u.Premium,
		Online:     u.Online,
		LastSeen:   u.LastSeen,
		Photos:     photos,
		Interests:  interests,
		CreatedAt:  u.CreatedAt,
	}
}
