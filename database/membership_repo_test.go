package database

import (
	"fmt"
	"testing"
)

func TestMembershipPointLookups(t *testing.T) {
	d := openTestDB(t)

	author := createUser(t, d, "author@example.com", "author")
	viewer := createUser(t, d, "viewer@example.com", "viewer")
	recipe := createRecipe(t, d, author.ID, "Solyanka", nil, nil)

	memberships := d.MembershipRepo()

	checks := []struct {
		name   string
		add    func() error
		lookup func() (bool, error)
	}{
		{
			name:   "favourite",
			add:    func() error { return memberships.AddFavourite(viewer.ID, recipe.ID) },
			lookup: func() (bool, error) { return memberships.IsFavorited(viewer.ID, recipe.ID) },
		},
		{
			name:   "cart",
			add:    func() error { return memberships.AddToCart(viewer.ID, recipe.ID) },
			lookup: func() (bool, error) { return memberships.IsInCart(viewer.ID, recipe.ID) },
		},
		{
			name:   "subscription",
			add:    func() error { return memberships.AddSubscription(viewer.ID, author.ID) },
			lookup: func() (bool, error) { return memberships.IsSubscribed(viewer.ID, author.ID) },
		},
	}

	for _, check := range checks {
		t.Run(check.name, func(t *testing.T) {
			present, err := check.lookup()
			if err != nil {
				t.Fatalf("lookup failed: %v", err)
			}
			if present {
				t.Fatal("membership reported before insert")
			}

			if err := check.add(); err != nil {
				t.Fatalf("insert failed: %v", err)
			}

			present, err = check.lookup()
			if err != nil {
				t.Fatalf("lookup failed: %v", err)
			}
			if !present {
				t.Fatal("membership not reported after insert")
			}
		})
	}
}

func TestDuplicateMembershipHitsUniqueIndex(t *testing.T) {
	d := openTestDB(t)

	author := createUser(t, d, "author@example.com", "author")
	viewer := createUser(t, d, "viewer@example.com", "viewer")
	recipe := createRecipe(t, d, author.ID, "Okroshka", nil, nil)

	memberships := d.MembershipRepo()

	if err := memberships.AddFavourite(viewer.ID, recipe.ID); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if err := memberships.AddFavourite(viewer.ID, recipe.ID); err == nil {
		t.Fatal("duplicate favourite insert succeeded, want unique constraint violation")
	}

	if err := memberships.AddSubscription(viewer.ID, author.ID); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if err := memberships.AddSubscription(viewer.ID, author.ID); err == nil {
		t.Fatal("duplicate subscription insert succeeded, want unique constraint violation")
	}
}

func TestRemoveReportsWhetherRowExisted(t *testing.T) {
	d := openTestDB(t)

	author := createUser(t, d, "author@example.com", "author")
	viewer := createUser(t, d, "viewer@example.com", "viewer")
	recipe := createRecipe(t, d, author.ID, "Kasha", nil, nil)

	memberships := d.MembershipRepo()

	removed, err := memberships.RemoveFromCart(viewer.ID, recipe.ID)
	if err != nil {
		t.Fatalf("RemoveFromCart failed: %v", err)
	}
	if removed {
		t.Error("RemoveFromCart reported a removal with nothing in the cart")
	}

	if err := memberships.AddToCart(viewer.ID, recipe.ID); err != nil {
		t.Fatalf("AddToCart failed: %v", err)
	}
	removed, err = memberships.RemoveFromCart(viewer.ID, recipe.ID)
	if err != nil {
		t.Fatalf("RemoveFromCart failed: %v", err)
	}
	if !removed {
		t.Error("RemoveFromCart did not report removing an existing row")
	}

	removed, err = memberships.RemoveSubscription(viewer.ID, author.ID)
	if err != nil {
		t.Fatalf("RemoveSubscription failed: %v", err)
	}
	if removed {
		t.Error("RemoveSubscription reported a removal with no subscription")
	}
}

func TestSubscriptionsPageWithRecipes(t *testing.T) {
	d := openTestDB(t)

	viewer := createUser(t, d, "viewer@example.com", "viewer")

	for i := 0; i < 3; i++ {
		author := createUser(t, d,
			fmt.Sprintf("author%d@example.com", i+1),
			fmt.Sprintf("author%d", i+1))
		createRecipe(t, d, author.ID, fmt.Sprintf("Recipe by %d", i+1), nil, nil)
		if err := d.MembershipRepo().AddSubscription(viewer.ID, author.ID); err != nil {
			t.Fatalf("AddSubscription failed: %v", err)
		}
	}

	total, authors, err := d.MembershipRepo().Subscriptions(viewer.ID, 1, 2)
	if err != nil {
		t.Fatalf("Subscriptions failed: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(authors) != 2 {
		t.Fatalf("page size = %d, want 2", len(authors))
	}
	if authors[0].Username != "author2" || authors[1].Username != "author3" {
		t.Errorf("unexpected page: %q, %q", authors[0].Username, authors[1].Username)
	}
	if len(authors[0].Recipes) != 1 {
		t.Errorf("recipes not preloaded: %+v", authors[0].Recipes)
	}
}
