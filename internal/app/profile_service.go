package app

import (
	"context"
	"errors"
	"io"

	"profilehub/internal/model"
	"profilehub/internal/repository"
	"profilehub/internal/upload"
)

type ProfileService struct {
	userRepo *repository.UserRepository
	uploads  *upload.Store
}

// PictureUpload carries the client filename (used only for its extension)
// and the file contents.
type PictureUpload struct {
	Filename string
	File     io.Reader
}

// UpdateProfileInput fields are optional: empty string / nil means "leave
// unchanged".
type UpdateProfileInput struct {
	Username string
	Email    string
	Picture  *PictureUpload
}

func NewProfileService(userRepo *repository.UserRepository, uploads *upload.Store) *ProfileService {
	return &ProfileService{userRepo: userRepo, uploads: uploads}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile applies the requested changes as one record mutation. The
// picture is validated and written before the transaction, so a rejected
// email change never leaves a dangling database reference; the file itself
// is cleaned up if the transaction fails.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	fields := map[string]any{}

	if username := input.Username; username != "" {
		fields["username"] = username
	}

	newEmail := ""
	if input.Email != "" {
		if e := normalizeEmail(input.Email); e != user.Email {
			newEmail = e
			fields["email"] = e
		}
	}

	newPicture := ""
	if input.Picture != nil {
		name, err := s.uploads.Save(userID, input.Picture.Filename, input.Picture.File)
		if err != nil {
			if errors.Is(err, upload.ErrUnsupportedExtension) {
				return nil, ErrUnsupportedFileType
			}
			return nil, err
		}
		newPicture = name
		fields["profile_picture"] = name
	}

	if len(fields) == 0 {
		return user, nil
	}

	err = s.userRepo.Transaction(ctx, func(txRepo *repository.UserRepository) error {
		if newEmail != "" {
			taken, err := txRepo.EmailTakenByOther(ctx, newEmail, userID)
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateIdentity
			}
		}
		return txRepo.UpdateFields(ctx, userID, fields)
	})
	if err != nil {
		if newPicture != "" {
			_ = s.uploads.Remove(newPicture)
		}
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}

	// The old image is unreferenced once the update commits; removal is
	// best-effort.
	if newPicture != "" && user.ProfilePicture != "" {
		_ = s.uploads.Remove(user.ProfilePicture)
	}

	return s.GetProfile(ctx, userID)
}
