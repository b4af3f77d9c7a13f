package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/princeprakhar/partnerhub/internal/models"
	"github.com/princeprakhar/partnerhub/internal/services"
)

const dateLayout = "2006-01-02 15:04"

func (a *app) newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func categoryNames(cats []models.Category) string {
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

func (a *app) cmdStore(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "show" {
		store, err := services.NewStoreService(a.client).Mine(ctx)
		if err != nil {
			return failure(err, "가게 정보를 불러오지 못했습니다.")
		}
		a.printStore(store, nil)
		return nil
	}
	if args[0] != "create" {
		return fmt.Errorf("unknown store command %q", args[0])
	}

	var (
		form       services.StoreForm
		categories idsFlag
	)
	fs := newFlagSet("store create")
	fs.StringVar(&form.Name, "name", "", "store name")
	fs.StringVar(&form.Description, "description", "", "store description")
	fs.StringVar(&form.Address, "address", "", "store address")
	fs.StringVar(&form.PhoneNumber, "phone", "", "store phone number")
	fs.StringVar(&form.AvailableTime, "hours", "", "contactable hours")
	fs.Var(&categories, "category", "store category id (repeatable)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	for _, id := range categories {
		form.ToggleCategory(id)
	}

	store, err := services.NewStoreService(a.client).Create(ctx, form)
	if err != nil {
		return failure(err, services.MsgStoreCreateFailed)
	}
	fmt.Fprintln(a.out, "가게 등록이 완료되었습니다.")
	a.printStore(store, nil)
	return nil
}

func (a *app) printStore(store *models.Store, names []string) {
	fmt.Fprintf(a.out, "상호명:   %s\n주소:     %s\n연락처:   %s\n연락시간: %s\n", store.Name, store.Address, store.PhoneNumber, store.AvailableTime)
	if store.Description != "" {
		fmt.Fprintf(a.out, "소개:     %s\n", store.Description)
	}
	if names != nil {
		fmt.Fprintf(a.out, "카테고리: %s\n", strings.Join(names, ", "))
	}
}

func (a *app) cmdCategories(ctx context.Context) error {
	cats, err := services.NewPostService(a.client).Categories(ctx)
	if err != nil {
		return failure(err, "카테고리를 불러오지 못했습니다.")
	}
	w := a.newTable()
	fmt.Fprintln(w, "ID\tNAME")
	for _, c := range cats {
		fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
	}
	return w.Flush()
}

func (a *app) cmdPosts(ctx context.Context, args []string) error {
	var selected multiFlag
	fs := newFlagSet("posts")
	fs.Var(&selected, "category", "partnership category name to include (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page, err := services.NewLoader(a.client).LoadMain(ctx, a.nav)
	if err != nil {
		if errors.Is(err, services.ErrNoStore) {
			return errors.New(services.MsgMainFailed)
		}
		return failure(err, services.MsgMainFailed)
	}

	set := services.NewCategorySet()
	for _, name := range selected {
		set.Toggle(name)
	}
	posts := services.FilterPosts(page.Posts, set)

	fmt.Fprintf(a.out, "%s | 안읽은 알림 %d개\n\n", page.Store.Name, page.UnreadCount)
	w := a.newTable()
	fmt.Fprintln(w, "ID\tTITLE\tSTORE\tPARTNERSHIP\tCREATED")
	for _, p := range posts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Title, p.StoreName, categoryNames(p.PartnershipCategories), p.CreatedAt.Local().Format(dateLayout))
	}
	return w.Flush()
}

func (a *app) cmdPost(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: partnerhub post show <id> | post create ...")
	}
	switch args[0] {
	case "show":
		if len(args) < 2 {
			return errors.New("usage: partnerhub post show <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		return a.showPost(ctx, id)
	case "create":
		return a.createPost(ctx, args[1:])
	default:
		return fmt.Errorf("unknown post command %q", args[0])
	}
}

func (a *app) showPost(ctx context.Context, id uint) error {
	post, err := services.NewLoader(a.client).LoadPostDetail(ctx, a.nav, id)
	if err != nil {
		if errors.Is(err, services.ErrNoStore) {
			return errors.New(services.MsgPostNotFound)
		}
		return failure(err, services.MsgPostNotFound)
	}

	fmt.Fprintf(a.out, "[%d] %s\n", post.ID, post.Title)
	fmt.Fprintf(a.out, "작성자:     %s\n상호명:     %s\n주소:       %s\n연락처:     %s\n연락시간:   %s\n",
		post.Author, post.StoreName, post.Address, post.PhoneNumber, post.AvailableTime)
	fmt.Fprintf(a.out, "가게 분류:  %s\n제휴 분류:  %s\n", categoryNames(post.StoreCategories), categoryNames(post.PartnershipCategories))
	fmt.Fprintf(a.out, "\n%s\n", post.Description)
	if post.ExtraMessage != "" {
		fmt.Fprintf(a.out, "\n%s\n", post.ExtraMessage)
	}
	if thumb := post.Thumbnail(); thumb != "" {
		fmt.Fprintf(a.out, "\n썸네일: %s\n", thumb)
	}
	for _, img := range post.Images {
		if img.ImageURL != post.Thumbnail() {
			fmt.Fprintf(a.out, "이미지: %s\n", img.ImageURL)
		}
	}
	return nil
}

func (a *app) createPost(ctx context.Context, args []string) error {
	var (
		form       services.PostForm
		categories idsFlag
		storeCats  idsFlag
		images     multiFlag
	)
	fs := newFlagSet("post create")
	fs.StringVar(&form.Title, "title", "", "post title")
	fs.StringVar(&form.StoreName, "store-name", "", "store name")
	fs.StringVar(&form.Description, "description", "", "post body")
	fs.StringVar(&form.Address, "address", "", "store address")
	fs.StringVar(&form.PhoneNumber, "phone", "", "contact phone number")
	fs.StringVar(&form.AvailableTime, "hours", "", "contactable hours")
	fs.StringVar(&form.ExtraMessage, "extra", "", "extra message")
	fs.Var(&categories, "category", "partnership category id (repeatable)")
	fs.Var(&storeCats, "store-category", "store category id (repeatable)")
	fs.Var(&images, "image", "image file path (repeatable, first is the thumbnail)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, id := range categories {
		form.ToggleCategory(id)
	}
	form.StoreCategories = storeCats

	if len(images) > services.MaxPostImages {
		fmt.Fprintf(a.errOut, "이미지는 최대 %d장까지 업로드됩니다.\n", services.MaxPostImages)
		images = images[:services.MaxPostImages]
	}
	files := make([]services.UploadFile, 0, len(images))
	for _, path := range images {
		f, err := services.LoadUploadFile(path)
		if err != nil {
			return err
		}
		files = append(files, f)
	}

	post, err := services.NewPostService(a.client).Create(ctx, form, files)
	if err != nil {
		return failure(err, services.MsgPostCreateFailed)
	}
	fmt.Fprintf(a.out, "게시글이 등록되었습니다. (id %d)\n", post.ID)
	return nil
}

func (a *app) cmdMyPage(ctx context.Context) error {
	page, err := services.NewLoader(a.client).LoadMyPage(ctx, a.nav)
	if err != nil {
		if errors.Is(err, services.ErrNoStore) {
			return errors.New(services.MsgMyPageFailed)
		}
		return failure(err, services.MsgMyPageFailed)
	}

	a.printStore(page.Store, page.CategoryNames(page.Store.Categories))
	fmt.Fprintf(a.out, "\n내 게시글 %d개\n", len(page.Posts))
	w := a.newTable()
	fmt.Fprintln(w, "ID\tTITLE\tCREATED")
	for _, p := range page.Posts {
		fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, p.Title, p.CreatedAt.Local().Format(dateLayout))
	}
	return w.Flush()
}
