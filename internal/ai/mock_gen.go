package ai

//go:generate mockgen -source=./completion.go -destination=../mocks/mock_ai_completer.go -package=mocks Completer
