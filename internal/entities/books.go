package entities

import "time"

type User struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Hash string `gorm:"column:hash;not null" json:"-"` // bcrypt credential, hidden from JSON
}

func (User) TableName() string { return "users" }

type Book struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	ISBN   string `gorm:"column:isbn;index;size:20" json:"isbn"`
	Title  string `gorm:"index;size:512" json:"title"`
	Author string `gorm:"index;size:256" json:"author"`
	Year   int    `json:"year"`
}

func (Book) TableName() string { return "books" }

// Review is a user's scored review of a book.
// The (user_id, book_id) unique index allows one review per user and book.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_reviews_user_book,priority:2" json:"book_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reviews_user_book,priority:1" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Score     int       `gorm:"not null" json:"score"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
	Book      Book      `gorm:"foreignKey:BookID" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

func (Review) TableName() string { return "reviews" }

// ReviewWithAuthor is a review row joined with the reviewer's display name.
type ReviewWithAuthor struct {
	ID        uint      `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
	Score     int       `json:"score"`
	Name      string    `json:"name"`
}

// ReviewStats aggregates the local reviews of a single book.
// AverageScore is nil when the book has no reviews.
type ReviewStats struct {
	Count        int64
	AverageScore *float64
}
