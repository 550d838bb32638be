package signal

// Message types on the signaling socket.
const (
	typeJoin          = "join"
	typeJoined        = "joined"
	typeOffer         = "offer"
	typeAnswer        = "answer"
	typeCandidate     = "candidate"
	typeLeave         = "leave"
	typeLeft          = "left"
	typeError         = "error"
	typePing          = "ping"
	typePong          = "pong"
	typeStreamAdded   = "stream_added"
	typeStreamRemoved = "stream_removed"
	typeMemberLeft    = "member_left"
)

// Offer actions tell the service why the client renegotiates.
const (
	actionSubscribe = "subscribe"
	actionPublish   = "publish"
	actionUnpublish = "unpublish"
)

type joinRequest struct {
	Type  string  `json:"type"`
	ID    string  `json:"id"`
	AppID string  `json:"app_id"`
	Room  string  `json:"room"`
	UID   *uint32 `json:"uid,omitempty"`
	Token string  `json:"token,omitempty"`
	Mode  string  `json:"mode"`
	Codec string  `json:"codec"`
}

type offerRequest struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	SDP    string `json:"sdp"`
	Action string `json:"action"`
}

type leaveRequest struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type candidateMessage struct {
	Type          string `json:"type"`
	Candidate     string `json:"candidate"`
	SDPMid        string `json:"sdpMid,omitempty"`
	SDPMLineIndex uint16 `json:"sdpMLineIndex"`
}

// inbound covers every message the service sends.
type inbound struct {
	Type          string   `json:"type"`
	ID            string   `json:"id,omitempty"`
	UID           uint32   `json:"uid,omitempty"`
	SDP           string   `json:"sdp,omitempty"`
	Error         string   `json:"error,omitempty"`
	StreamID      string   `json:"stream_id,omitempty"`
	Kinds         []string `json:"kinds,omitempty"`
	Candidate     string   `json:"candidate,omitempty"`
	SDPMid        string   `json:"sdpMid,omitempty"`
	SDPMLineIndex uint16   `json:"sdpMLineIndex,omitempty"`
}
