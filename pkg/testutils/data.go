//go:build testutils

package testutils

import "github.com/rendetalje/friday/pkg/models"

var TestMessages = []models.Message{
	{
		Role:     models.RoleUser,
		Content:  "Hej Friday",
		Metadata: nil,
	},
	{
		Role:    models.RoleAssistant,
		Content: "Hej! Hvad kan jeg hjælpe med i dag?",
		Metadata: map[string]interface{}{
			"foo": "bar",
		},
	},
	{
		Role:    models.RoleUser,
		Content: "Hvordan ser kalenderen ud i denne uge?",
	},
	{
		Role:    models.RoleAssistant,
		Content: "Der er tre rengøringsaftaler i denne uge: tirsdag kl. 9, onsdag kl. 13 og fredag kl. 10.",
	},
	{
		Role:    models.RoleUser,
		Content: "Book Anna til rengøring fredag kl. 10",
	},
	{
		Role:    models.RoleAssistant,
		Content: "Jeg har forberedt en booking til Anna fredag kl. 10:00-13:00. Vil du godkende den?",
	},
	{
		Role:    models.RoleUser,
		Content: "Ja, godkend den",
	},
	{
		Role:    models.RoleAssistant,
		Content: "Booking oprettet: Rengøring - Anna, fredag kl. 10:00-13:00. Kunden har ikke fået en invitation.",
	},
	{
		Role:    models.RoleUser,
		Content: "Opret faktura til Marie for 6 arbejdstimer",
	},
	{
		Role:    models.RoleAssistant,
		Content: "Jeg har forberedt en faktura-kladde til Marie: 6 timer á 349 kr = 2094 kr. Skal jeg oprette den?",
	},
}
