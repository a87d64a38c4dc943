package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Comment is a top-level YouTube comment with its sentiment, kept side by
// side for the lexicon scorer and the external classifier
type Comment struct {
	ID                  string          `json:"id" gorm:"primaryKey"`
	VideoID             string          `json:"video_id" gorm:"not null;index"`
	Text                string          `json:"text" gorm:"type:text"`
	Author              string          `json:"author"`
	LikeCount           int64           `json:"like_count"`
	PublishedAt         time.Time       `json:"published_at"`
	Sentiment           Sentiment       `json:"sentiment" gorm:"type:varchar(10);not null;default:'neutral';index"`
	SentimentScore      float64         `json:"sentiment_score"`
	SentimentSource     SentimentSource `json:"sentiment_source" gorm:"type:varchar(12)"`
	LexiconSentiment    Sentiment       `json:"lexicon_sentiment" gorm:"type:varchar(10)"`
	LexiconScore        float64         `json:"lexicon_score"`
	ClassifierSentiment *Sentiment      `json:"classifier_sentiment,omitempty" gorm:"type:varchar(10)"`
	ClassifierScore     *float64        `json:"classifier_score,omitempty"`
	EmojiDetected       bool            `json:"emoji_detected"`
	Topics              datatypes.JSON  `json:"topics" gorm:"type:text"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Comment) TableName() string {
	return "comments"
}

// TopicList decodes the stored topic array. Malformed data yields nil.
func (c *Comment) TopicList() []string {
	if len(c.Topics) == 0 {
		return nil
	}
	var topics []string
	if err := json.Unmarshal(c.Topics, &topics); err != nil {
		return nil
	}
	return topics
}

// SetTopics stores topics as a JSON array
func (c *Comment) SetTopics(topics []string) {
	if topics == nil {
		topics = []string{}
	}
	data, _ := json.Marshal(topics)
	c.Topics = datatypes.JSON(data)
}
