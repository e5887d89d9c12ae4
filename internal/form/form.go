// Package form declares the HTML form schemas for venue, artist and show
// submissions and validates them with go-playground/validator. Handlers bind
// a request into a form struct, run Check, and either re-render the form with
// the field errors or convert the form into a directory input.
package form

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gigbook/gigbook/internal/directory"
)

// Validator wraps a shared validator.Validate instance configured to report
// errors under the HTML field names.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Check validates the struct and returns one message per failing field keyed
// by its form name, or nil when the struct is valid.
func (x *Validator) Check(s any) map[string]string {
	err := x.v.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"form": "invalid submission"}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "url":
		return "must be a valid URL"
	case "max":
		return "value is too long"
	case "email":
		return "must be a valid email address"
	default:
		return "invalid value"
	}
}

// VenueForm is the field schema for creating or editing a venue.
type VenueForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,max=32"`
	Address            string   `form:"address" validate:"required,max=255"`
	Phone              string   `form:"phone" validate:"omitempty,max=32"`
	Genres             []string `form:"genres" validate:"dive,max=60"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=500"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	SeekingTalent      bool     `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// Input converts the validated form into a mutation input.
func (f VenueForm) Input() directory.VenueInput {
	return directory.VenueInput{
		Name:               f.Name,
		Address:            f.Address,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		WebsiteLink:        f.WebsiteLink,
		FacebookLink:       f.FacebookLink,
		ImageLink:          f.ImageLink,
		Genres:             f.Genres,
		SeekingTalent:      f.SeekingTalent,
		SeekingDescription: f.SeekingDescription,
	}
}

// ArtistForm is the field schema for creating or editing an artist.
type ArtistForm struct {
	Name               string   `form:"name" validate:"required,max=120"`
	City               string   `form:"city" validate:"required,max=120"`
	State              string   `form:"state" validate:"required,max=32"`
	Phone              string   `form:"phone" validate:"omitempty,max=32"`
	Genres             []string `form:"genres" validate:"dive,max=60"`
	WebsiteLink        string   `form:"website_link" validate:"omitempty,url,max=500"`
	FacebookLink       string   `form:"facebook_link" validate:"omitempty,url,max=500"`
	ImageLink          string   `form:"image_link" validate:"omitempty,url,max=500"`
	SeekingVenue       bool     `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description" validate:"max=500"`
}

// Input converts the validated form into a mutation input.
func (f ArtistForm) Input() directory.ArtistInput {
	return directory.ArtistInput{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		WebsiteLink:        f.WebsiteLink,
		FacebookLink:       f.FacebookLink,
		ImageLink:          f.ImageLink,
		Genres:             f.Genres,
		SeekingVenue:       f.SeekingVenue,
		SeekingDescription: f.SeekingDescription,
	}
}

// ShowForm is the field schema for booking a show. The start time arrives as
// text and is parsed separately so the validator can report it as a field
// error rather than a bind failure.
type ShowForm struct {
	ArtistID  uint64 `form:"artist_id" validate:"required"`
	VenueID   uint64 `form:"venue_id" validate:"required"`
	StartTime string `form:"start_time" validate:"required"`
}

// startTimeLayouts are the accepted submission formats: the display format
// and the value an <input type="datetime-local"> produces.
var startTimeLayouts = []string{"2006-01-02 15:04:05", "2006-01-02T15:04"}

// Input parses the start time and converts the form into a mutation input.
// An unparseable time is reported as a field error map, matching Check's
// shape.
func (f ShowForm) Input() (directory.ShowInput, map[string]string) {
	raw := strings.TrimSpace(f.StartTime)
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return directory.ShowInput{ArtistID: f.ArtistID, VenueID: f.VenueID, StartTime: t}, nil
		}
	}
	return directory.ShowInput{}, map[string]string{"start_time": "must be a timestamp like 2025-06-01 20:00:00"}
}
