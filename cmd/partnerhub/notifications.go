package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/princeprakhar/partnerhub/internal/services"
)

func (a *app) cmdNotifications(ctx context.Context, args []string) error {
	svc := services.NewNotificationService(a.client)
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "list":
		feed := services.NewNotificationFeed(svc)
		if err := feed.Load(ctx); err != nil {
			return failure(err, "알림을 불러오지 못했습니다.")
		}
		fmt.Fprintf(a.out, "안읽은 알림 %d개\n\n", feed.Unread())
		w := a.newTable()
		fmt.Fprintln(w, "ID\t\tFROM\tPOST\tMESSAGE\tRECEIVED")
		for _, n := range feed.Items() {
			mark := " "
			if !n.IsRead {
				mark = "*"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n", n.ID, mark, n.SenderUsername, n.Post, n.Message, n.CreatedAt.Local().Format(dateLayout))
		}
		return w.Flush()
	case "unread":
		count, err := svc.UnreadCount(ctx)
		if err != nil {
			return failure(err, "알림을 불러오지 못했습니다.")
		}
		fmt.Fprintln(a.out, count)
		return nil
	case "read":
		if len(args) < 2 {
			return errors.New("usage: partnerhub notifications read <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := svc.MarkRead(ctx, id); err != nil {
			return failure(err, "알림 읽음 처리에 실패했습니다.")
		}
		count, err := svc.UnreadCount(ctx)
		if err != nil {
			return failure(err, "알림을 불러오지 못했습니다.")
		}
		fmt.Fprintf(a.out, "읽음 처리했습니다. 안읽은 알림 %d개\n", count)
		return nil
	default:
		return fmt.Errorf("unknown notifications command %q", sub)
	}
}

func (a *app) cmdPartnerRequest(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: partnerhub partner-request <post-id> <message>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	message, err := prompt("제휴 요청 메시지", strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	if _, err := services.NewNotificationService(a.client).SendPartnerRequest(ctx, id, message); err != nil {
		return failure(err, services.MsgPartnerRequestFailed)
	}
	fmt.Fprintln(a.out, "제휴 요청을 보냈습니다.")
	return nil
}
