package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	DeliveryBasePrice  string
	DeliveryPricePerKm string
	DeliveryPricePerKg string

	FreeDeliveryEnabled  string
	FreeDeliveryRadiusKm string

	ReconciliationSchedule string
}
