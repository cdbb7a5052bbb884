// Package cli implements platectl, a local front end to the plate engine that
// keeps profiles and menus in a SQLite file.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"portion-vision/plate-svc/internal/engine"
	"portion-vision/plate-svc/internal/knowledge"
	"portion-vision/plate-svc/internal/service"
	"portion-vision/plate-svc/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	keyKnowledgeBase = "knowledge-base"
	keyDBPath        = "db-path"
	keyVerbose       = "verbose"

	defaultKnowledgeBase = "data/foodDatabase.json"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	store   *storage.SQLiteStore

	foods    *service.FoodService
	profiles *service.ProfileService
	menus    *service.MenuService
	plates   *service.RecommendationService
}

// NewRootCmd builds a fresh command tree with its own configuration.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "platectl",
		Short:         "Portion recommendations for the plate in front of you",
		Long:          "platectl classifies menu items, estimates daily calories and recommends per-item portions for a meal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			a.initLogging(cmd)
			return a.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.platectl.yaml)")
	flags.String(keyKnowledgeBase, defaultKnowledgeBase, "path to the food knowledge base JSON")
	flags.String(keyDBPath, "", "path to the local SQLite database (default is $HOME/.platectl.db)")
	flags.BoolP(keyVerbose, "v", false, "log engine activity to stderr")

	for _, key := range []string{keyKnowledgeBase, keyDBPath, keyVerbose} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}

	root.AddCommand(
		a.classifyCmd(),
		a.estimateCmd(),
		a.recommendCmd(),
		a.profileCmd(),
		a.menuCmd(),
	)
	return root
}

func (a *app) initConfig() error {
	a.v.SetEnvPrefix("PLATECTL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(home)
		a.v.SetConfigName(".platectl")
	}

	err := a.v.ReadInConfig()
	notFound := viper.ConfigFileNotFoundError{}
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func (a *app) initLogging(cmd *cobra.Command) {
	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if a.v.GetBool(keyVerbose) {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

func (a *app) dbPath() string {
	if path := a.v.GetString(keyDBPath); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".platectl.db"
	}
	return filepath.Join(home, ".platectl.db")
}

func (a *app) open() error {
	base, err := knowledge.Load(a.v.GetString(keyKnowledgeBase))
	if err != nil {
		logrus.WithError(err).Warn("knowledge base unavailable, using keyword fallbacks")
	}

	store, err := storage.NewSQLiteStore(a.dbPath())
	if err != nil {
		return err
	}
	a.store = store

	classifier := engine.NewClassifier(base)
	a.foods = service.NewFoodService(base, classifier)
	a.profiles = service.NewProfileService(store)
	a.menus = service.NewMenuService(store, nil, nil)
	a.plates = service.NewRecommendationService(engine.NewRecommender(classifier), store, a.menus, store, nil, nil)
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
