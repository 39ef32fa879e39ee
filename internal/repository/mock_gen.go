package repository

//go:generate mockgen -source=./user.go -destination=../mocks/mock_user_repository.go -package=mocks UserRepositoryIface
//go:generate mockgen -source=./company.go -destination=../mocks/mock_company_repository.go -package=mocks CompanyRepositoryIface
//go:generate mockgen -source=./membership.go -destination=../mocks/mock_membership_repository.go -package=mocks MembershipRepositoryIface
//go:generate mockgen -source=./invite.go -destination=../mocks/mock_invite_repository.go -package=mocks InviteRepositoryIface
//go:generate mockgen -source=./bid.go -destination=../mocks/mock_bid_repository.go -package=mocks BidRepositoryIface
//go:generate mockgen -source=./client_company.go -destination=../mocks/mock_client_company_repository.go -package=mocks ClientCompanyRepositoryIface
//go:generate mockgen -source=./tender.go -destination=../mocks/mock_tender_repository.go -package=mocks TenderRepositoryIface
//go:generate mockgen -source=./knowledge.go -destination=../mocks/mock_knowledge_repository.go -package=mocks KnowledgeRepositoryIface
