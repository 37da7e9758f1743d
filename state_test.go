package pagebloc_test

import (
	"github.com/aarondl/null/v8"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rakeshchandrapal/go-pagebloc"
)

var _ = Describe("State", func() {
	Describe("NewState", func() {
		It("matches the documented defaults", func() {
			state := pagebloc.NewState[string]()

			Expect(state.Status).To(Equal(pagebloc.StatusInitial))
			Expect(state.Items).To(BeNil())
			Expect(state.CurrentPage).To(BeZero())
			Expect(state.HasReachedMax).To(BeFalse())
			Expect(state.IsFirstLoad).To(BeTrue())
			Expect(state.Error).To(BeEmpty())
			Expect(state.TotalItems.Valid).To(BeFalse())
			Expect(state.TotalPages.Valid).To(BeFalse())
		})
	})

	Describe("Status predicates", func() {
		It("classifies loading statuses", func() {
			Expect(pagebloc.StatusFirstPageLoading.IsLoading()).To(BeTrue())
			Expect(pagebloc.StatusLoadingMore.IsLoading()).To(BeTrue())
			Expect(pagebloc.StatusRefreshing.IsLoading()).To(BeTrue())
			Expect(pagebloc.StatusInitial.IsLoading()).To(BeFalse())
			Expect(pagebloc.StatusFirstPageSuccess.IsLoading()).To(BeFalse())
		})

		It("classifies error statuses", func() {
			Expect(pagebloc.StatusFirstPageError.IsError()).To(BeTrue())
			Expect(pagebloc.StatusLoadMoreError.IsError()).To(BeTrue())
			Expect(pagebloc.StatusRefreshError.IsError()).To(BeTrue())
			Expect(pagebloc.StatusRefreshSuccess.IsError()).To(BeFalse())
		})

		It("classifies success statuses", func() {
			Expect(pagebloc.StatusFirstPageSuccess.IsSuccess()).To(BeTrue())
			Expect(pagebloc.StatusLoadMoreSuccess.IsSuccess()).To(BeTrue())
			Expect(pagebloc.StatusRefreshSuccess.IsSuccess()).To(BeTrue())
			Expect(pagebloc.StatusInitial.IsSuccess()).To(BeFalse())
		})
	})

	Describe("IsEmpty", func() {
		It("is false before anything has loaded", func() {
			state := pagebloc.NewState[string]()
			Expect(state.IsEmpty()).To(BeFalse())
		})

		It("is false while a fetch is in flight", func() {
			state := pagebloc.State[string]{
				Status: pagebloc.StatusFirstPageLoading,
				Items:  []string{},
			}
			Expect(state.IsEmpty()).To(BeFalse())
		})

		It("is true once the list resolved to empty", func() {
			state := pagebloc.State[string]{
				Status: pagebloc.StatusFirstPageSuccess,
				Items:  []string{},
			}
			Expect(state.IsEmpty()).To(BeTrue())
		})

		It("is false when items are present", func() {
			state := pagebloc.State[string]{
				Status: pagebloc.StatusFirstPageSuccess,
				Items:  []string{"a"},
			}
			Expect(state.IsEmpty()).To(BeFalse())
		})
	})

	Describe("LoadProgress", func() {
		It("is undefined while the total is unknown", func() {
			state := pagebloc.State[string]{Items: []string{"a", "b"}}

			_, known := state.LoadProgress()
			Expect(known).To(BeFalse())
		})

		It("is undefined when the total is zero", func() {
			state := pagebloc.State[string]{TotalItems: null.IntFrom(0)}

			_, known := state.LoadProgress()
			Expect(known).To(BeFalse())
		})

		It("returns the loaded fraction", func() {
			state := pagebloc.State[string]{
				Items:      []string{"a", "b"},
				TotalItems: null.IntFrom(8),
			}

			progress, known := state.LoadProgress()
			Expect(known).To(BeTrue())
			Expect(progress).To(BeNumerically("~", 0.25))
		})

		It("caps at 1 when items exceed the reported total", func() {
			state := pagebloc.State[string]{
				Items:      []string{"a", "b", "c"},
				TotalItems: null.IntFrom(2),
			}

			progress, _ := state.LoadProgress()
			Expect(progress).To(Equal(1.0))
		})
	})

	Describe("Equal", func() {
		base := pagebloc.State[string]{
			Status:      pagebloc.StatusFirstPageSuccess,
			Items:       []string{"a", "b"},
			CurrentPage: 1,
			TotalItems:  null.IntFrom(2),
		}

		It("holds for structurally identical snapshots", func() {
			other := base
			other.Items = []string{"a", "b"}
			Expect(base.Equal(other)).To(BeTrue())
		})

		It("distinguishes a nil item list from an empty one", func() {
			never := pagebloc.State[string]{Status: pagebloc.StatusInitial}
			empty := never
			empty.Items = []string{}
			Expect(never.Equal(empty)).To(BeFalse())
		})

		It("fails on any scalar difference", func() {
			other := base
			other.CurrentPage = 2
			Expect(base.Equal(other)).To(BeFalse())

			other = base
			other.Error = "boom"
			Expect(base.Equal(other)).To(BeFalse())

			other = base
			other.TotalItems = null.IntFrom(3)
			Expect(base.Equal(other)).To(BeFalse())
		})

		It("fails on item differences", func() {
			other := base
			other.Items = []string{"a", "c"}
			Expect(base.Equal(other)).To(BeFalse())
		})
	})
})
