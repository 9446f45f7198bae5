package rpc

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type GetSaltRequest struct {
	Account string `json:"account" validate:"required,max=128"`
}

// GetSaltResponse carries the account's salt. For unknown accounts Salt is
// freshly generated and Exists is false; logging in with it registers the account.
type GetSaltResponse struct {
	Salt   []byte `json:"salt"`
	Exists bool   `json:"exists"`
}

type LoginRequest struct {
	Account  string `json:"account"  validate:"required,max=128"`
	Salt     []byte `json:"salt"     validate:"required,min=16"`
	Verifier []byte `json:"verifier" validate:"required,len=32"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Registered   bool   `json:"registered"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Diary is a stored entry. Title, Content and Mood are ciphertexts.
type Diary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SaveDiaryRequest struct {
	Title   string   `json:"title"   validate:"required"`
	Content string   `json:"content" validate:"required"`
	Mood    string   `json:"mood,omitempty"`
	Tags    []string `json:"tags,omitempty" validate:"dive,required,max=64"`
}

type SaveDiaryResponse struct {
	ID string `json:"id"`
}

type UpdateDiaryRequest struct {
	ID      string   `json:"id"      validate:"required"`
	Title   string   `json:"title"   validate:"required"`
	Content string   `json:"content" validate:"required"`
	Mood    string   `json:"mood,omitempty"`
	Tags    []string `json:"tags,omitempty" validate:"dive,required,max=64"`
}

type UpdateDiaryResponse struct{}

type RemoveDiaryRequest struct {
	ID string `json:"id" validate:"required"`
}

type RemoveDiaryResponse struct{}

type ListDiariesRequest struct {
	Tag string `json:"tag,omitempty"`
}

type ListDiariesResponse struct {
	Diaries []*Diary `json:"diaries"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListTagsRequest struct{}

type ListTagsResponse struct {
	Tags []*Tag `json:"tags"`
}

type ActivityRequest struct {
	Days int `json:"days" validate:"gte=0,lte=3660"`
}

// DayActivity is the number of entries written on Date (YYYY-MM-DD, UTC).
type DayActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type ActivityResponse struct {
	Days []*DayActivity `json:"days"`
}

type ExportRequest struct{}

type ExportResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
