package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../domain/cricket --output domain/cricket --outpkg cricketmock --filename provider_mock.go
