package app

import (
	"gorm.io/gorm"

	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/repos"
)

type Repos struct {
	User         repos.UserRepo
	ApiKey       repos.ApiKeyRepo
	Package      repos.PackageRepo
	Installation repos.InstallationRepo
	Review       repos.ReviewRepo
	Mint         repos.MintRepo
	Royalty      repos.RoyaltyRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		ApiKey:       repos.NewApiKeyRepo(db, log),
		Package:      repos.NewPackageRepo(db, log),
		Installation: repos.NewInstallationRepo(db, log),
		Review:       repos.NewReviewRepo(db, log),
		Mint:         repos.NewMintRepo(db, log),
		Royalty:      repos.NewRoyaltyRepo(db, log),
	}
}
