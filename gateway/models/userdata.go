package models

import (
	"time"

	ntsmodels "github.com/alovak/nts-userdata/nts/models"
)

// UserDataRequest is the body of the user data endpoints.
type UserDataRequest struct {
	ntsmodels.Request

	// ReferenceID names a stored reference which becomes Request.Reference.
	ReferenceID string `json:"reference_id,omitempty"`
	// At is the wall clock the timestamps of the user data are rendered
	// from. The gateway clock is used when it is nil.
	At *time.Time `json:"at,omitempty"`
}

type UserDataResponse struct {
	UserData string `json:"user_data"`
	Length   int    `json:"length"`
}

type CreateReference struct {
	OriginalMessageCode string            `json:"original_message_code"`
	UserDataTags        map[string]string `json:"user_data_tags"`
}

// Reference is the stored part of a prior host response that voids and
// reversals echo back.
type Reference struct {
	ID                  string            `json:"id"`
	OriginalMessageCode string            `json:"original_message_code"`
	UserDataTags        map[string]string `json:"user_data_tags"`
	CreatedAt           time.Time         `json:"created_at"`
}

func (r *Reference) TransactionReference() *ntsmodels.TransactionReference {
	tags := make(map[string]string, len(r.UserDataTags))
	for k, v := range r.UserDataTags {
		tags[k] = v
	}
	return &ntsmodels.TransactionReference{
		OriginalMessageCode: r.OriginalMessageCode,
		UserDataTags:        tags,
	}
}
