package dto

import (
	"shareit/internal/domains/comment/model"
	"shareit/shared/constant"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"
	"strings"
)

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,notblank,max=2000"`
}

func (c *CreateCommentRequest) ToModel(itemID, authorID int64) model.Comment {
	return model.Comment{
		Text:     strings.TrimSpace(c.Text),
		ItemID:   itemID,
		AuthorID: authorID,
		Metadata: gModel.NewMetadata(),
	}
}

type CommentResponse struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	AuthorName string `json:"author_name"`
	Created    string `json:"created"`
}

func (r *CommentResponse) FromModel(comment model.Comment, authorName string) {
	r.ID = comment.ID
	r.Text = comment.Text
	r.AuthorName = authorName
	r.Created = timezone.Format(comment.CreatedAt, constant.DateTimeFormat)
}
