package strava

import (
	"golang.org/x/oauth2"
)

const (
	AuthURL  = "https://www.strava.com/oauth/authorize"
	TokenURL = "https://www.strava.com/oauth/token"
)

// Scopes the challenge needs. Strava expects them comma-separated in a
// single scope value.
var Scopes = []string{"read,activity:read_all"}

// OAuthConfig builds the oauth2 config used for the connect redirect, the
// code exchange in the callback and refresh-token grants.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  AuthURL,
			TokenURL: TokenURL,
		},
		RedirectURL: redirectURL,
		Scopes:      Scopes,
	}
}

// AthleteID pulls the athlete identifier out of the token exchange extras.
// Strava embeds the athlete object in its token response.
func AthleteID(token *oauth2.Token) int64 {
	athlete, ok := token.Extra("athlete").(map[string]interface{})
	if !ok {
		return 0
	}
	id, ok := athlete["id"].(float64)
	if !ok {
		return 0
	}
	return int64(id)
}
