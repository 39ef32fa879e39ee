package registry

//go:generate mockgen -source=./kvk.go -destination=../mocks/mock_registry_client.go -package=mocks Client
