package email

const (
	subjectMaintenanceAssigned   = "Een vakman is toegewezen aan uw onderhoudsverzoek"
	subjectMaintenanceReminder   = "Herinnering: onderhoudsafspraak"
	subjectPaymentReceipt        = "Betaling verwerkt voor uw onderhoudsklus"
	subjectCancellationRequested = "Annuleringsverzoek voor een onderhoudsklus"
)
