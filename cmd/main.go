// Command sync-lab runs a full session walkthrough on a single device:
// three execution contexts share one durable store and one broadcast
// channel, exactly like browser tabs sharing local storage.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"sync-lab/composer"
	"sync-lab/domain"
	"sync-lab/internal"
	"sync-lab/repositories"
	"sync-lab/roomcode"
	"sync-lab/runtime"
	"sync-lab/services"
	"sync-lab/sink"
)

// propagationDelay gives sibling event loops time to drain their inboxes
// between scenario steps. The bus gives no delivery signal to wait on.
const propagationDelay = 50 * time.Millisecond

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// participant bundles everything one execution context owns: its bus node,
// its service handles and its local view of the world.
type participant struct {
	name     string
	node     *runtime.Node
	sessions *services.SessionService
	relay    *services.RelayService
	timeline *sink.Timeline
	replica  *sink.Replica
}

func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := internal.NewLogger(config.LogLevel)

	// 2. Database (BadgerDB) — one store for the whole device
	db, err := badger.Open(badger.DefaultOptions(config.DataDir).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Broadcast channel shared by all contexts on this device
	channel := runtime.NewChannel()
	repo := repositories.NewSessionRepository(db, log)
	codes := roomcode.New()

	newParticipant := func(name string) *participant {
		node := channel.Attach(log, config.BufferSize)
		return &participant{
			name:     name,
			node:     node,
			sessions: services.NewSessionService(log, repo, node, codes),
			relay:    services.NewRelayService(log, node),
		}
	}

	host := newParticipant("Alice")
	guestA := newParticipant("Bob")
	guestB := newParticipant("Clara")
	defer func() {
		for _, p := range []*participant{host, guestA, guestB} {
			p.node.Close()
		}
	}()

	// 4. Host opens a two-seat room
	createReq := services.CreateSessionRequest{HostName: host.name, MaxUsers: 2}
	if err = services.ValidateCreateSession(createReq); err != nil {
		return err
	}
	session, hostUser, err := host.sessions.CreateSession(host.name, domain.SessionConfig{MaxUsers: createReq.MaxUsers})
	if err != nil {
		return err
	}
	host.watch(hostUser, session)
	color.Green.Printf("Room %s created by %s (capacity %d)\n", session.ID, host.name, session.Config.MaxUsers)

	// 5. First guest joins, second bounces off the capacity limit
	_, bobUser, err := guestA.join(session.ID)
	if err != nil {
		return err
	}
	color.Green.Printf("%s joined room %s\n", guestA.name, session.ID)

	if _, _, err = guestB.join(session.ID); err != nil {
		color.Red.Printf("%s rejected: %v\n", guestB.name, err)
	}
	time.Sleep(propagationDelay)

	// 6. Host kicks Bob, freeing a seat for Clara
	if err = host.sessions.KickUser(bobUser.ID); err != nil {
		return err
	}
	time.Sleep(propagationDelay)
	if guestA.replica.KickedOut() {
		color.Yellow.Printf("%s saw the kick and left the room view\n", guestA.name)
	}

	current, claraUser, err := guestB.join(session.ID)
	if err != nil {
		return err
	}
	color.Green.Printf("%s joined on retry\n", guestB.name)
	time.Sleep(propagationDelay)

	// 7. Chat traffic: plain text, command expansion, an inline file
	hostCompose := composer.New(hostUser)
	claraCompose := composer.New(claraUser)
	host.relay.Send(hostCompose.Text("Welcome to the room!"))
	guestB.relay.Send(claraCompose.Text("/mydevice"))
	guestB.relay.Send(claraCompose.File("notes.txt", []byte("shared meeting notes\n")))
	host.relay.Send(hostCompose.Text("/date"))
	time.Sleep(propagationDelay)

	printMembers(current)
	printTranscript(host.timeline)

	stats := host.node.Stats()
	log.Info("Bus stats (host context)",
		"published", stats.Published, "delivered", stats.Delivered, "dropped", stats.Dropped)

	// 8. Teardown: the room and its records are gone for good
	if err = host.sessions.EndSession(); err != nil {
		return err
	}
	time.Sleep(propagationDelay)
	color.Cyan.Println("Session ended, records deleted")
	return nil
}

// watch wires the context's sinks once it owns an identity.
func (p *participant) watch(self domain.User, session domain.Session) {
	p.timeline = sink.NewTimeline(self.ID)
	p.replica = sink.NewReplica(self.ID, session)
	p.node.Subscribe(p.timeline)
	p.node.Subscribe(p.replica)
}

func (p *participant) join(code string) (domain.Session, domain.User, error) {
	req := services.JoinSessionRequest{Code: code, Name: p.name}
	if err := services.ValidateJoinSession(req); err != nil {
		return domain.Session{}, domain.User{}, err
	}
	session, user, err := p.sessions.JoinSession(code, p.name, "")
	if err != nil {
		return domain.Session{}, domain.User{}, err
	}
	p.watch(user, session)
	return session, user, nil
}

func printMembers(session domain.Session) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Role", "Joined", "Device"})
	for _, u := range session.Users {
		table.Append([]string{u.Name, string(u.Role), u.JoinedAt.Format(time.TimeOnly), u.DeviceInfo})
	}
	table.Render()
}

func printTranscript(timeline *sink.Timeline) {
	for _, msg := range timeline.Messages() {
		prefix := fmt.Sprintf("[%s] %s:", msg.CreatedAt.Format(time.TimeOnly), msg.SenderName)
		switch msg.Kind {
		case domain.FileMessage:
			color.Magenta.Printf("%s %s (%s, %d bytes)\n",
				prefix, msg.Content, msg.Attachment.MimeType, msg.Attachment.ByteSize)
		default:
			fmt.Printf("%s %s\n", prefix, msg.Content)
		}
	}
}
