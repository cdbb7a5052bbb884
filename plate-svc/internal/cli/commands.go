package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portion-vision/plate-svc/internal/domain"
	"portion-vision/plate-svc/internal/engine"
	"portion-vision/plate-svc/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const defaultProfileID = "default"

// profile flag name -> key understood by the profile normaliser
var profileFlagKeys = map[string]string{
	"name":     "name",
	"weight":   "weight_kg",
	"height":   "height_cm",
	"age":      "age",
	"sex":      "sex",
	"activity": "activity_level",
	"goal":     "goal",
	"diet":     "diet_preference",
}

func addProfileFlags(flags *pflag.FlagSet) {
	flags.String("profile", defaultProfileID, "id of the stored profile")
	flags.String("name", "", "display name")
	flags.Float64("weight", 0, "body weight in kg")
	flags.Float64("height", 0, "height in cm")
	flags.Int("age", 0, "age in years")
	flags.String("sex", "", "male or female")
	flags.String("activity", "", "sedentary, light, moderate or active")
	flags.String("goal", "", "lose, maintain or gain")
	flags.String("diet", "", "vegetarian, vegan, jain, ...")
}

// profileOverrides collects only the profile flags set on the command line.
func profileOverrides(flags *pflag.FlagSet) map[string]any {
	raw := map[string]any{}
	flags.Visit(func(f *pflag.Flag) {
		key, ok := profileFlagKeys[f.Name]
		if !ok {
			return
		}
		switch f.Value.Type() {
		case "float64":
			v, _ := flags.GetFloat64(f.Name)
			raw[key] = v
		case "int":
			v, _ := flags.GetInt(f.Name)
			raw[key] = v
		default:
			raw[key] = f.Value.String()
		}
	})
	return raw
}

func (a *app) classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <item>...",
		Short: "Show the category and plate role of menu items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := make([]domain.ClassifiedItem, 0, len(args))
			for _, name := range args {
				items = append(items, a.foods.Classify(name))
			}
			return printJSON(cmd, items)
		},
	}
}

func (a *app) estimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate daily calories, BMI and protein for a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.storedProfile(cmd)
			if err != nil {
				return err
			}
			return printJSON(cmd, a.profiles.Estimate(service.MergeProfile(raw, profileOverrides(cmd.Flags()))))
		},
	}
	addProfileFlags(cmd.Flags())
	return cmd
}

func (a *app) recommendCmd() *cobra.Command {
	var mealType string
	cmd := &cobra.Command{
		Use:   "recommend [item]...",
		Short: "Recommend portions for a meal",
		Long:  "Recommend portions for the given menu items, or for today's saved menu when none are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			req := domain.RecommendRequest{
				Profile:  profileOverrides(cmd.Flags()),
				MealType: mealType,
			}
			if len(args) > 0 {
				req.MenuItems = args
			}

			id, _ := cmd.Flags().GetString("profile")
			if _, err := a.profiles.Get(ctx, id); err == nil {
				req.ProfileID = id
			} else if !errors.Is(err, service.ErrProfileNotFound) {
				return err
			}

			result, err := a.plates.Recommend(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().StringVarP(&mealType, "meal", "m", "lunch", "breakfast, lunch, dinner or snack")
	addProfileFlags(cmd.Flags())
	return cmd
}

func (a *app) profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the stored profile",
	}

	save := &cobra.Command{
		Use:   "save",
		Short: "Create or update a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.storedProfile(cmd)
			if err != nil {
				return err
			}
			id, _ := cmd.Flags().GetString("profile")
			view, err := a.profiles.Save(context.Background(), id, service.MergeProfile(raw, profileOverrides(cmd.Flags())))
			if err != nil {
				return formatValidation(err)
			}
			return printJSON(cmd, view)
		},
	}
	addProfileFlags(save.Flags())

	show := &cobra.Command{
		Use:   "show",
		Short: "Print a profile with its insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("profile")
			view, err := a.profiles.Get(context.Background(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, view)
		},
	}
	show.Flags().String("profile", defaultProfileID, "id of the stored profile")

	history := &cobra.Command{
		Use:   "history",
		Short: "List recent plates recommended for a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("profile")
			limit, _ := cmd.Flags().GetInt("limit")
			plates, err := a.plates.History(context.Background(), id, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd, plates)
		},
	}
	history.Flags().String("profile", defaultProfileID, "id of the stored profile")
	history.Flags().Int("limit", service.DefaultHistoryLimit, "number of plates to list")

	cmd.AddCommand(save, show, history)
	return cmd
}

func (a *app) menuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Manage today's menu",
	}

	set := &cobra.Command{
		Use:   "set <item>...",
		Short: "Save today's menu; items may also be comma separated",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items := []string{}
			for _, arg := range args {
				items = append(items, strings.Split(arg, ",")...)
			}
			menu, err := a.menus.SetToday(context.Background(), items, service.SourceManual)
			if err != nil {
				return formatValidation(err)
			}
			return printJSON(cmd, menu)
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print today's menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			menu, err := a.menus.Today(context.Background())
			if err != nil {
				return err
			}
			return printJSON(cmd, menu)
		},
	}

	cmd.AddCommand(set, show)
	return cmd
}

// storedProfile returns the saved profile named by --profile as raw fields,
// or an empty map when none is saved.
func (a *app) storedProfile(cmd *cobra.Command) (map[string]any, error) {
	id, _ := cmd.Flags().GetString("profile")
	view, err := a.profiles.Get(context.Background(), id)
	if errors.Is(err, service.ErrProfileNotFound) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	raw := engine.ProfileFields(view.Profile)
	raw["name"] = view.Name
	return raw, nil
}

func formatValidation(err error) error {
	var verr service.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("invalid input: %s", verr.Error())
	}
	return err
}
