package pagebloc_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aarondl/sqlboiler/v4/queries/qm"

	"github.com/rakeshchandrapal/go-pagebloc"
	"github.com/rakeshchandrapal/go-pagebloc/sqlboiler"
	"github.com/rakeshchandrapal/go-pagebloc/tests/models"
)

var _ = Describe("Bloc over SQLBoiler", func() {
	queryArticles := func(ctx context.Context, mods ...qm.QueryMod) ([]*models.Article, error) {
		return models.Articles(mods...).All(ctx, container.DB)
	}

	countArticles := func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
		return models.Articles(mods...).Count(ctx, container.DB)
	}

	titles := func(articles []*models.Article) []string {
		out := make([]string, len(articles))
		for i, a := range articles {
			out[i] = a.Title
		}
		return out
	}

	status := func(b *pagebloc.Bloc[*models.Article]) func() pagebloc.Status {
		return func() pagebloc.Status { return b.State().Status }
	}

	BeforeEach(func() {
		Expect(CleanupArticles(ctx, container.DB)).To(Succeed())
		_, err := SeedArticles(ctx, container.DB, 10)
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("Probing mode", func() {
		It("pages through the table newest-first until exhausted", func() {
			repo := sqlboiler.NewRepository(queryArticles)
			bloc := pagebloc.New[*models.Article](repo,
				pagebloc.WithPageSize[*models.Article](4),
			)
			defer bloc.Close()

			Expect(bloc.Dispatch(pagebloc.LoadFirstPage{})).To(Succeed())

			Eventually(status(bloc)).Should(Equal(pagebloc.StatusFirstPageSuccess))
			state := bloc.State()
			Expect(titles(state.Items)).To(Equal([]string{
				"Article 10", "Article 9", "Article 8", "Article 7",
			}))
			Expect(state.HasReachedMax).To(BeFalse())
			Expect(state.TotalItems.Valid).To(BeFalse())

			Expect(bloc.Dispatch(pagebloc.LoadMore{})).To(Succeed())
			Expect(bloc.Dispatch(pagebloc.LoadMore{})).To(Succeed())

			Eventually(func() bool { return bloc.State().HasReachedMax }).Should(BeTrue())
			state = bloc.State()
			Expect(state.Items).To(HaveLen(10))
			Expect(state.CurrentPage).To(Equal(3))
			Expect(titles(state.Items[8:])).To(Equal([]string{"Article 2", "Article 1"}))
		})
	})

	Describe("Counting mode", func() {
		It("reports exact totals alongside each page", func() {
			repo := sqlboiler.NewRepository(queryArticles,
				sqlboiler.WithCount[*models.Article](countArticles),
			)
			bloc := pagebloc.New[*models.Article](repo,
				pagebloc.WithPageSize[*models.Article](4),
			)
			defer bloc.Close()

			Expect(bloc.Dispatch(pagebloc.LoadFirstPage{})).To(Succeed())

			Eventually(status(bloc)).Should(Equal(pagebloc.StatusFirstPageSuccess))
			state := bloc.State()
			Expect(state.TotalItems.Int).To(Equal(10))
			Expect(state.TotalPages.Int).To(Equal(3))
			Expect(state.HasReachedMax).To(BeFalse())

			progress, known := state.LoadProgress()
			Expect(known).To(BeTrue())
			Expect(progress).To(BeNumerically("~", 0.4))
		})

		It("applies filter mappings to both page and count queries", func() {
			repo := sqlboiler.NewRepository(queryArticles,
				sqlboiler.WithCount[*models.Article](countArticles),
			)
			bloc := pagebloc.New[*models.Article](repo,
				pagebloc.WithPageSize[*models.Article](20),
				pagebloc.WithFilters[*models.Article](map[string]any{"status": "published"}),
			)
			defer bloc.Close()

			Expect(bloc.Dispatch(pagebloc.LoadFirstPage{})).To(Succeed())

			Eventually(status(bloc)).Should(Equal(pagebloc.StatusFirstPageSuccess))
			state := bloc.State()
			Expect(state.Items).To(HaveLen(7))
			Expect(state.TotalItems.Int).To(Equal(7))
			Expect(state.HasReachedMax).To(BeTrue())
			for _, article := range state.Items {
				Expect(article.Status).To(Equal("published"))
				Expect(article.Summary.Valid).To(BeTrue())
			}
		})
	})

	Describe("Refresh", func() {
		It("surfaces rows inserted after the first load", func() {
			repo := sqlboiler.NewRepository(queryArticles)
			bloc := pagebloc.New[*models.Article](repo,
				pagebloc.WithPageSize[*models.Article](5),
			)
			defer bloc.Close()

			Expect(bloc.Dispatch(pagebloc.LoadFirstPage{})).To(Succeed())
			Eventually(status(bloc)).Should(Equal(pagebloc.StatusFirstPageSuccess))

			_, err := InsertArticle(ctx, container.DB, "Breaking story")
			Expect(err).ToNot(HaveOccurred())

			Expect(bloc.Dispatch(pagebloc.Refresh{})).To(Succeed())

			Eventually(status(bloc)).Should(Equal(pagebloc.StatusRefreshSuccess))
			state := bloc.State()
			Expect(state.CurrentPage).To(Equal(1))
			Expect(titles(state.Items[:1])).To(Equal([]string{"Breaking story"}))
		})
	})
})
