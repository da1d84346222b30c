// Package entity defines the wire-level request and response types of the
// storage and auth APIs. The session token always travels in the request
// body as "sid", never in a cookie.
package entity

import (
	"github.com/moohomor/storyforge/database/model"
)

// Msg is the uniform result envelope: {"result":"OK"} on success, the error
// text (or a generic message) on failure.
type Msg struct {
	Result string `json:"result"`
}

type AuthRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Sid string `json:"sid"`
}

type LogoutRequest struct {
	Sid string `json:"sid" binding:"required"`
}

type GetByIdRequest struct {
	Id       int    `json:"id" binding:"required"`
	Sid      string `json:"sid"`
	Detailed bool   `json:"detailed"`
}

type User struct {
	Id      int     `json:"id"`
	Name    string  `json:"name"`
	Contact *string `json:"contact"`
	Stories []int   `json:"stories"`
	Reviews []int   `json:"reviews"`
}

type NewStoryRequest struct {
	Sid     string `json:"sid" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Content string `json:"content"`
}

type DeleteStoryRequest struct {
	Sid string `json:"sid" binding:"required"`
	Id  int    `json:"id" binding:"required"`
}

type UpdateStoryContentRequest struct {
	Sid     string `json:"sid" binding:"required"`
	Id      int    `json:"id" binding:"required"`
	Content string `json:"content"`
}

// UpdateStoryPropertiesRequest carries a partial update: absent fields are
// left untouched, not reset.
type UpdateStoryPropertiesRequest struct {
	Sid     string  `json:"sid" binding:"required"`
	Id      int     `json:"id" binding:"required"`
	Private *bool   `json:"private"`
	Name    *string `json:"name"`
}

type ContentResponse struct {
	Content string `json:"content"`
	Result  string `json:"result"`
}

type ListStoriesRequest struct {
	ListingType string `json:"listing_type"`
	Sid         string `json:"sid"`
	Offset      int    `json:"offset"`
	Limit       int    `json:"limit"`
}

type ListStoriesResponse struct {
	Stories []*model.Story `json:"stories"`
}

type NewReviewRequest struct {
	Sid     string `json:"sid" binding:"required"`
	Story   int    `json:"story" binding:"required"`
	Content string `json:"content"`
}

type DeleteReviewRequest struct {
	Sid string `json:"sid" binding:"required"`
	Id  int    `json:"id" binding:"required"`
}

type DeleteAssetRequest struct {
	Sid     string `json:"sid" binding:"required"`
	StoryId int    `json:"story_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

type ListStoryAssetsResponse struct {
	Assets []string `json:"assets"`
}

// IncreaseParamRequest targets a story or review row. UpOrDown defaults to +1
// and is validated to [-1, 1] at the boundary.
type IncreaseParamRequest struct {
	Sid      string `json:"sid" binding:"required"`
	Id       int    `json:"id" binding:"required"`
	Param    string `json:"param" binding:"required"`
	Type     string `json:"type" binding:"required"`
	UpOrDown *int   `json:"up_or_down"`
}

type IncreaseParamResponse struct {
	NewValue int `json:"new_value"`
}
