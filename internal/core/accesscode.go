package core

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// Access code parameters. The payload prefix and raster size are what the
// mobile scanner expects; changing either breaks check-ins in the field.
const (
	accessCodePrefix = "GymID:"
	accessCodeSize   = 400
)

// AccessCodePayload returns the string encoded into a gym's access code.
func AccessCodePayload(gymID string) string {
	return accessCodePrefix + gymID
}

// AccessCodeDataURL renders the gym's access code as a black-on-white PNG
// and returns it as an embeddable base64 data URL. The same gym ID always
// encodes the same payload; regeneration simply overwrites the stored
// value, last write wins.
func AccessCodeDataURL(gymID string) (string, error) {
	if gymID == "" {
		return "", fmt.Errorf("gymID cannot be empty for access code generation")
	}

	png, err := qrcode.Encode(AccessCodePayload(gymID), qrcode.Medium, accessCodeSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode access code for gym '%s': %w", gymID, err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
