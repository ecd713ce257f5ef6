package users

import "time"

// User es el perfil único por instalación.
type User struct {
	ID             string    `json:"id"`
	UserName       string    `json:"userName"`
	UserEmail      string    `json:"userEmail"`
	ProfileImage   string    `json:"profileImage,omitempty"`
	AvatarInitials string    `json:"avatarInitials"`
	MemberSince    string    `json:"memberSince"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	SyncedToCloud  bool      `json:"syncedToCloud"`
}

// Patch es una actualización parcial del perfil: nil = no tocar.
type Patch struct {
	UserName     *string `json:"userName,omitempty"`
	UserEmail    *string `json:"userEmail,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

func (p Patch) Empty() bool {
	return p.UserName == nil && p.UserEmail == nil && p.ProfileImage == nil
}
